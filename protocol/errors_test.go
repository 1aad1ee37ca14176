// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package protocol

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var errSomething = errors.New("something")

func TestResultOf(t *testing.T) {
	require.Equal(t, EXECUTION_RESULT_SUCCESS, ResultOf(nil))
	require.Equal(t, EXECUTION_RESULT_ERROR_SMART_CONTRACT, ResultOf(errSomething))
	require.Equal(t, EXECUTION_RESULT_ERROR_ALLOCATION, ResultOf(AllocationFailure(errSomething)))
	require.Equal(t, EXECUTION_RESULT_ERROR_AUTHORIZATION, ResultOf(AuthorizationFailure(errSomething)))
}

func TestResultOf_SeesThroughWrapping(t *testing.T) {
	err := errors.Wrap(AllocationFailure(errSomething), "create contribution")

	require.Equal(t, EXECUTION_RESULT_ERROR_ALLOCATION, ResultOf(err))
	require.Equal(t, errSomething, errors.Cause(err), "cause should reach the sentinel")
}

func TestExecutionResult_TextRoundTrip(t *testing.T) {
	var r ExecutionResult
	require.NoError(t, r.UnmarshalText([]byte("ERROR_ALLOCATION")))
	require.Equal(t, EXECUTION_RESULT_ERROR_ALLOCATION, r)
	require.Error(t, r.UnmarshalText([]byte("NOPE")))
}
