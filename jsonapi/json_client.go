// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/publicapi"
	"github.com/pkg/errors"
)

// HttpError is returned for every non 200 response; the decoded body is still returned alongside it
type HttpError struct {
	StatusCode    int
	RequestStatus publicapi.RequestStatus
	Details       string
}

func (e *HttpError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("node responded %d %s", e.StatusCode, e.RequestStatus)
	}
	return fmt.Sprintf("node responded %d %s: %s", e.StatusCode, e.RequestStatus, e.Details)
}

type Client struct {
	serverUrl  string
	httpClient *http.Client
}

func NewClient(serverUrl string, timeout time.Duration) *Client {
	return &Client{
		serverUrl:  serverUrl,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SendTransaction(ctx context.Context, signedTx *protocol.SignedTransaction) (*publicapi.SendTransactionOutput, error) {
	output := &publicapi.SendTransactionOutput{}
	err := c.post(ctx, "/api/v1/send-transaction", signedTx, output)
	return output, err
}

func (c *Client) RequestAirdrop(ctx context.Context, address protocol.Address, amount uint64) (*publicapi.RequestAirdropOutput, error) {
	request := struct {
		Address protocol.Address `json:"address"`
		Amount  uint64           `json:"amount"`
	}{address, amount}

	output := &publicapi.RequestAirdropOutput{}
	err := c.post(ctx, "/api/v1/request-airdrop", request, output)
	return output, err
}

func (c *Client) GetAccount(ctx context.Context, address protocol.Address) (*publicapi.GetAccountOutput, error) {
	output := &publicapi.GetAccountOutput{}
	err := c.get(ctx, "/api/v1/get-account", address, output)
	return output, err
}

func (c *Client) GetContribution(ctx context.Context, address protocol.Address) (*publicapi.GetContributionOutput, error) {
	output := &publicapi.GetContributionOutput{}
	err := c.get(ctx, "/api/v1/get-contribution", address, output)
	return output, err
}

func (c *Client) post(ctx context.Context, path string, body interface{}, into interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "failed to encode request to %s", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverUrl+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "failed to create request to %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, into)
}

func (c *Client) get(ctx context.Context, path string, address protocol.Address, into interface{}) error {
	query := url.Values{"address": []string{address.String()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverUrl+path+"?"+query.Encode(), nil)
	if err != nil {
		return errors.Wrapf(err, "failed to create request to %s", path)
	}
	return c.do(req, into)
}

func (c *Client) do(req *http.Request, into interface{}) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", req.URL.Path)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read response from %s", req.URL.Path)
	}

	httpErr := &HttpError{
		StatusCode:    res.StatusCode,
		RequestStatus: publicapi.RequestStatus(res.Header.Get("X-REQUEST-RESULT")),
		Details:       res.Header.Get("X-ERROR-DETAILS"),
	}

	if res.Header.Get("Content-Type") != "application/json; charset=utf-8" {
		if httpErr.Details == "" {
			httpErr.Details = string(body)
		}
		return httpErr
	}

	if err := json.Unmarshal(body, into); err != nil {
		return errors.Wrapf(err, "response from %s is not valid json", req.URL.Path)
	}

	if res.StatusCode != http.StatusOK {
		return httpErr
	}
	return nil
}
