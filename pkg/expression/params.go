// Package expression builds DynamoDB expression strings together with the
// ExpressionAttributeNames and ExpressionAttributeValues side-tables the wire
// protocol requires. Conditions and update actions are immutable trees built
// from factory functions; rendering walks a tree against a shared Params
// table so repeated references to the same attribute or value reuse one
// placeholder.
package expression

import (
	"fmt"
	"math/rand"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/henhal/dynamodb-expressions/internal/avutil"
)

var placeholderChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Params accumulates the name and value placeholder tables for one or more
// renders. A single Params instance may be threaded through several builder
// calls so that an update expression and a condition expression share one
// placeholder namespace for the same request. Instances are not safe for
// concurrent use.
type Params struct {
	Names  map[string]string
	Values map[string]types.AttributeValue
}

// NewParams creates an empty placeholder table.
func NewParams() *Params {
	return &Params{}
}

func (p *Params) ensureNames() {
	if p.Names == nil {
		p.Names = make(map[string]string)
	}
}

func (p *Params) ensureValues() {
	if p.Values == nil {
		p.Values = make(map[string]types.AttributeValue)
	}
}

// BindName binds a raw attribute key to an escaped name placeholder.
// Binding the same key again returns the placeholder already issued for it.
// If the candidate placeholder is taken by a different key, a pseudo-random
// numeric suffix is appended until a free or identically-bound slot is found.
func (p *Params) BindName(rawKey string) string {
	p.ensureNames()

	base := placeholderChars.ReplaceAllString(rawKey, "")
	if base == "" {
		base = "attr"
	}

	placeholder := "#" + base
	for {
		existing, taken := p.Names[placeholder]
		if !taken {
			p.Names[placeholder] = rawKey
			return placeholder
		}
		if existing == rawKey {
			return placeholder
		}
		placeholder = fmt.Sprintf("#%s%d", base, rand.Intn(1000))
	}
}

// BindValue binds a literal value to an escaped value placeholder, using hint
// to derive the candidate. Binding a structurally identical value at the same
// hint reuses the existing placeholder; a different value forces a suffixed
// fresh one.
func (p *Params) BindValue(value any, hint string) (string, error) {
	av, err := avutil.Marshal(value)
	if err != nil {
		return "", err
	}

	p.ensureValues()

	base := placeholderChars.ReplaceAllString(hint, "")
	if base == "" {
		base = "val"
	}

	placeholder := ":" + base
	for {
		existing, taken := p.Values[placeholder]
		if !taken {
			p.Values[placeholder] = av
			return placeholder, nil
		}
		if avutil.Equal(existing, av) {
			return placeholder, nil
		}
		placeholder = fmt.Sprintf(":%s%d", base, rand.Intn(1000))
	}
}
