package advert

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"brightrec/internal/domain"
)

// Prefix marks a recovery advertisement.
const Prefix = "Recovery_"

var validate = validator.New()

// Encode renders a as "Recovery_" followed by its JSON body.
func Encode(a domain.Advertisement) (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return Prefix + string(b), nil
}

// FromSession builds the advertisement for a started session.
func FromSession(s domain.RecoverySession) domain.Advertisement {
	return domain.Advertisement{SigningKey: s.SigningPublicKey, Timestamp: s.CreatedAt}
}

// Parse decodes a scanned advertisement. A missing prefix, invalid JSON or a
// missing field all yield a malformed-advertisement error.
func Parse(token string) (domain.Advertisement, error) {
	body, ok := strings.CutPrefix(token, Prefix)
	if !ok {
		return domain.Advertisement{}, malformed(nil)
	}
	var a domain.Advertisement
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		return domain.Advertisement{}, malformed(err)
	}
	if err := validate.Struct(a); err != nil {
		return domain.Advertisement{}, malformed(err)
	}
	return a, nil
}

func malformed(err error) error {
	return &domain.Error{Kind: domain.KindMalformedAdvertisement, Op: "parse advertisement", Err: err}
}
