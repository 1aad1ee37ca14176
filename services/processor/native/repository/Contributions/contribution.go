// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contributions

import (
	"math"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/pkg/errors"
)

const (
	MIN_RATING = 1
	MAX_RATING = 5
)

type Contribution struct {
	Uri     string           `json:"uri"`
	Creator protocol.Address `json:"creator"`
	Rating  uint64           `json:"rating"`
}

// NewContribution starts an unrated record, rejecting uris that would not fit the slot.
func NewContribution(uri string, creator protocol.Address) (*Contribution, error) {
	if encodedUriSize(uri) > URI_MAX_ENCODED_SIZE_BYTES {
		return nil, errors.Wrapf(ErrRecordTooLarge, "uri of %d bytes exceeds %d", len(uri), URI_MAX_SIZE_BYTES)
	}
	return &Contribution{Uri: uri, Creator: creator}, nil
}

func ValidateRating(rating uint8) error {
	if rating < MIN_RATING || rating > MAX_RATING {
		return errors.Wrapf(ErrInvalidRating, "rating %d is outside %d..%d", rating, MIN_RATING, MAX_RATING)
	}
	return nil
}

// Rate adds rating to the accumulator. On error the record is left untouched.
func (c *Contribution) Rate(rating uint8) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	if c.Rating > math.MaxUint64-uint64(rating) {
		return errors.Wrapf(ErrRatingOverflow, "rating %d on top of %d", rating, c.Rating)
	}
	c.Rating += uint64(rating)
	return nil
}
