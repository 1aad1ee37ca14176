// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/orbs-network/knowledge-directory/crypto/keys"
	"github.com/orbs-network/knowledge-directory/jsonapi"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

const usage = `usage: kd-cli [flags] <command>

commands:
  keygen             print a new ed25519 key pair and its address
  airdrop            credit -amount to the account of -key (or -address)
  create             create a contribution for -uri paid by -key in the slot of -slot-key
  rate               add -rating to the contribution at -address, signed by -key
  get-contribution   print the contribution at -address
  get-account        print the account at -address

flags:
`

func main() {
	logger := log.GetLogger().WithOutput(log.NewFormattingOutput(os.Stderr, log.NewHumanReadableFormatter()))

	server := flag.String("server", "http://localhost:8080", "node http address")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	keyHex := flag.String("key", "", "hex private key of the signing user")
	slotKeyHex := flag.String("slot-key", "", "hex private key of the new contribution slot, generated when empty")
	address := flag.String("address", "", "account address")
	uri := flag.String("uri", "", "contribution uri")
	rating := flag.Uint("rating", 0, "rating between 1 and 5")
	amount := flag.Uint64("amount", 1000000000, "airdrop amount")
	nonce := flag.Uint64("nonce", uint64(time.Now().UnixNano()), "transaction nonce")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cli := &cli{
		client: jsonapi.NewClient(*server, *timeout),
		nonce:  *nonce,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var result interface{}
	var err error
	switch flag.Arg(0) {
	case "keygen":
		result, err = cli.keygen()
	case "airdrop":
		result, err = cli.airdrop(ctx, *keyHex, *address, *amount)
	case "create":
		result, err = cli.create(ctx, *keyHex, *slotKeyHex, *uri)
	case "rate":
		result, err = cli.rate(ctx, *keyHex, *address, *rating)
	case "get-contribution":
		result, err = cli.getContribution(ctx, *address)
	case "get-account":
		result, err = cli.getAccount(ctx, *address)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if result != nil {
		printJson(result)
	}
	if err != nil {
		logger.Error("command failed", log.String("command", flag.Arg(0)), log.Error(err))
		os.Exit(1)
	}
}

type cli struct {
	client *jsonapi.Client
	nonce  uint64
}

type keyOutput struct {
	Address    protocol.Address `json:"address"`
	PrivateKey string           `json:"privateKey"`
}

func (c *cli) keygen() (interface{}, error) {
	keyPair, err := keys.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	return &keyOutput{Address: keyPair.Address(), PrivateKey: keyPair.PrivateKeyHex()}, nil
}

func (c *cli) airdrop(ctx context.Context, keyHex string, address string, amount uint64) (interface{}, error) {
	var recipient protocol.Address
	var err error
	if address != "" {
		recipient, err = protocol.AddressFromString(address)
	} else {
		var keyPair *keys.Ed25519KeyPair
		keyPair, err = requireKey("key", keyHex)
		if keyPair != nil {
			recipient = keyPair.Address()
		}
	}
	if err != nil {
		return nil, err
	}
	return c.client.RequestAirdrop(ctx, recipient, amount)
}

func (c *cli) create(ctx context.Context, keyHex string, slotKeyHex string, uri string) (interface{}, error) {
	user, err := requireKey("key", keyHex)
	if err != nil {
		return nil, err
	}

	var slot *keys.Ed25519KeyPair
	if slotKeyHex == "" {
		slot, err = keys.GenerateEd25519Key()
	} else {
		slot, err = keys.Ed25519KeyPairFromPrivateKeyHex(slotKeyHex)
	}
	if err != nil {
		return nil, err
	}

	signedTx, err := jsonapi.SignTransaction(jsonapi.CreateContributionTransaction(user.Address(), slot.Address(), uri, c.nonce), slot, user)
	if err != nil {
		return nil, err
	}

	output, err := c.client.SendTransaction(ctx, signedTx)
	return struct {
		Slot   protocol.Address `json:"slot"`
		Result interface{}      `json:"result"`
	}{slot.Address(), output}, err
}

func (c *cli) rate(ctx context.Context, keyHex string, address string, rating uint) (interface{}, error) {
	rater, err := requireKey("key", keyHex)
	if err != nil {
		return nil, err
	}
	slot, err := protocol.AddressFromString(address)
	if err != nil {
		return nil, errors.Wrap(err, "-address must name the contribution slot")
	}
	if rating > 255 {
		return nil, errors.Errorf("rating %d does not fit in a byte", rating)
	}

	signedTx, err := jsonapi.SignTransaction(jsonapi.RateContributionTransaction(rater.Address(), slot, uint8(rating), c.nonce), rater)
	if err != nil {
		return nil, err
	}
	return c.client.SendTransaction(ctx, signedTx)
}

func (c *cli) getContribution(ctx context.Context, address string) (interface{}, error) {
	slot, err := protocol.AddressFromString(address)
	if err != nil {
		return nil, errors.Wrap(err, "-address is required")
	}
	return c.client.GetContribution(ctx, slot)
}

func (c *cli) getAccount(ctx context.Context, address string) (interface{}, error) {
	account, err := protocol.AddressFromString(address)
	if err != nil {
		return nil, errors.Wrap(err, "-address is required")
	}
	return c.client.GetAccount(ctx, account)
}

func requireKey(name string, keyHex string) (*keys.Ed25519KeyPair, error) {
	if keyHex == "" {
		return nil, errors.Errorf("-%s is required", name)
	}
	return keys.Ed25519KeyPairFromPrivateKeyHex(keyHex)
}

func printJson(value interface{}) {
	bytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(bytes))
}
