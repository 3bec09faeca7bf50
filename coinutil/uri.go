// Copyright (c) 2018-2024 The xgox-project developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinutil

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/xgox-project/walletcore/chaincfg"
)

// PaymentURI is the parsed form of a payment request URI such as
// "xgox:XJtSNWxWufU5XAh59JfXPx9peodJwTqPqf?amount=0.0003&label=rent".  A
// bare address string parses as a URI carrying only an address.
type PaymentURI struct {
	// Address is the payment destination.  It is nil for request-only
	// URIs that carry just an "r" parameter.
	Address Address

	// Amount is the requested amount.  HasAmount distinguishes a zero
	// request from an absent parameter.
	Amount    Amount
	HasAmount bool

	// Label and Message are free-form display strings.
	Label   string
	Message string

	// Request is the value of the "r" parameter, a URL to fetch a full
	// payment request from.
	Request string

	// Extra holds any parameters not otherwise recognized.
	Extra map[string]string
}

// ParseURI parses a payment URI for the provided network.  The scheme must
// match the network's registered URI scheme; input without any scheme is
// accepted when it is a bare valid address.  Duplicated query parameters are
// rejected.
func ParseURI(uri string, net *chaincfg.Params) (*PaymentURI, error) {
	// A bare address is shorthand for a URI with only a destination.
	if !strings.Contains(uri, ":") {
		addr, err := DecodeAddress(uri, net)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", uri, err)
		}
		return &PaymentURI{Address: addr}, nil
	}

	scheme, rest, _ := strings.Cut(uri, ":")
	if scheme != net.URIScheme {
		return nil, fmt.Errorf("unknown URI scheme %q", scheme)
	}

	addrPart, query, hasQuery := strings.Cut(rest, "?")

	out := &PaymentURI{}
	if addrPart != "" {
		addr, err := DecodeAddress(addrPart, net)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", addrPart, err)
		}
		out.Address = addr
	}

	if hasQuery {
		values, err := url.ParseQuery(query)
		if err != nil {
			return nil, err
		}
		for key, vals := range values {
			if len(vals) != 1 {
				return nil, fmt.Errorf("duplicate URI parameter %q", key)
			}
			val := vals[0]
			switch key {
			case "amount":
				amt, err := parseDecimalAmount(val)
				if err != nil {
					return nil, err
				}
				out.Amount = amt
				out.HasAmount = true
			case "label":
				out.Label = val
			case "message":
				out.Message = val
			case "r":
				out.Request = val
			default:
				if out.Extra == nil {
					out.Extra = make(map[string]string)
				}
				out.Extra[key] = val
			}
		}
	}

	if out.Address == nil && out.Request == "" {
		return nil, errors.New("URI carries neither address nor request URL")
	}
	return out, nil
}

// parseDecimalAmount converts a decimal coin value string to base units.
func parseDecimalAmount(s string) (Amount, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %v", s, err)
	}
	amt, err := NewAmount(f)
	if err != nil || amt < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return amt, nil
}
