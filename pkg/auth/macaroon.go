package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	macaroonv2 "gopkg.in/macaroon.v2"
)

const expiresCaveatPrefix = "expires="

var ErrTokenExpired = errors.New("session token expired")

// MacaroonSerialize returns the cookie-safe form of the given macaroon
func MacaroonSerialize(m *macaroonv2.Macaroon) (string, error) {
	marshalled, err := m.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(marshalled), nil
}

// MacaroonDeserialize reverses MacaroonSerialize
func MacaroonDeserialize(serializedMacaroon string) (*macaroonv2.Macaroon, error) {
	var m macaroonv2.Macaroon
	decoded, err := base64.RawURLEncoding.DecodeString(serializedMacaroon)
	if err != nil {
		return nil, err
	}
	err = m.UnmarshalBinary(decoded)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MintSessionToken returns a serialized macaroon whose id is the session id
// and which stops verifying after expires.
func MintSessionToken(rootKey []byte, location string, sessionID string, expires time.Time) (string, error) {
	m, err := macaroonv2.New(rootKey, []byte(sessionID), location, macaroonv2.V2)
	if err != nil {
		return "", err
	}

	caveat := expiresCaveatPrefix + expires.UTC().Format(time.RFC3339)
	if err := m.AddFirstPartyCaveat([]byte(caveat)); err != nil {
		return "", err
	}

	return MacaroonSerialize(m)
}

// VerifySessionToken checks the token signature and expiry caveat and
// returns the session id it carries.
func VerifySessionToken(rootKey []byte, token string, now time.Time) (string, error) {
	m, err := MacaroonDeserialize(token)
	if err != nil {
		return "", err
	}

	err = m.Verify(rootKey, func(caveat string) error {
		if !strings.HasPrefix(caveat, expiresCaveatPrefix) {
			return fmt.Errorf("unknown caveat %q", caveat)
		}
		expires, err := time.Parse(time.RFC3339, strings.TrimPrefix(caveat, expiresCaveatPrefix))
		if err != nil {
			return err
		}
		if !now.Before(expires) {
			return ErrTokenExpired
		}
		return nil
	}, nil)
	if err != nil {
		return "", err
	}

	return string(m.Id()), nil
}
