package model

import (
	"bytes"
	"encoding/json"
	"regexp"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseboard/pkg/domain/types"
)

const (
	// CaseDateLayout is the only accepted format of a case creation date
	CaseDateLayout = "2006-01-02T15:04:05Z"

	// NewCaseDays is the age in calendar days up to which a case counts as new (inclusive)
	NewCaseDays = 7
)

var severityNoise = regexp.MustCompile(`[() 0-9]`)

// Case represents a support case as cached from the case-management system
type Case struct {
	ID          types.CaseID `json:"id,omitempty"`
	Owner       string       `json:"owner"`
	Severity    string       `json:"severity"`
	Account     string       `json:"account"`
	Problem     string       `json:"problem"`
	Status      string       `json:"status"`
	CreateDate  string       `json:"createdate"`
	LastUpdate  string       `json:"last_update,omitempty"`
	Description string       `json:"description,omitempty"`
	Product     string       `json:"product,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
}

// NormalizeSeverity strips parentheses, spaces and digits from a raw severity
// such as "(1) Urgent" or "2 (Medium)"
func NormalizeSeverity(severity string) string {
	return severityNoise.ReplaceAllString(severity, "")
}

// CreatedAt parses the creation date of the case
func (c *Case) CreatedAt() (time.Time, error) {
	t, err := time.Parse(CaseDateLayout, c.CreateDate)
	if err == nil && t.Format(CaseDateLayout) != c.CreateDate {
		// time.Parse tolerates fractional seconds the layout does not name
		err = goerr.New("unexpected trailing precision")
	}
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid case creation date",
			goerr.V("case_id", c.ID),
			goerr.V("value", c.CreateDate),
			goerr.T(ErrTagInvalidTimestamp))
	}
	return t, nil
}

// IsNew reports whether the case was created at most NewCaseDays calendar
// days before today (UTC)
func (c *Case) IsNew(today time.Time) (bool, error) {
	created, err := c.CreatedAt()
	if err != nil {
		return false, err
	}

	days := int(utcDate(today).Sub(utcDate(created)).Hours() / 24)
	return days <= NewCaseDays, nil
}

// Normalized returns a copy of the case with its severity normalized
func (c *Case) Normalized() *Case {
	normalized := *c
	normalized.Severity = NormalizeSeverity(c.Severity)
	if c.Tags != nil {
		normalized.Tags = append([]string(nil), c.Tags...)
	}
	return &normalized
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Cases is the cached case snapshot keyed by case number
type Cases map[types.CaseID]*Case

// UnmarshalJSON decodes the snapshot and fills each case ID from its key
func (c *Cases) UnmarshalJSON(data []byte) error {
	var raw map[types.CaseID]*Case
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for id, v := range raw {
		if v == nil {
			delete(raw, id)
			continue
		}
		v.ID = id
	}
	*c = raw
	return nil
}

// CaseList is a case snapshot decoded in document order. A case number
// repeated in the document keeps its first position and its last value.
type CaseList []*Case

// UnmarshalJSON walks the snapshot object key by key to keep its order
func (l *CaseList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return goerr.Wrap(err, "failed to read case snapshot")
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return goerr.New("case snapshot is not an object", goerr.V("token", tok))
	}

	var result CaseList
	index := make(map[types.CaseID]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return goerr.Wrap(err, "failed to read case number")
		}
		id := types.CaseID(tok.(string))

		var c *Case
		if err := dec.Decode(&c); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V("case_id", id))
		}

		pos, seen := index[id]
		switch {
		case c == nil && seen:
			result[pos] = nil
		case c == nil:
		case seen:
			c.ID = id
			result[pos] = c
		default:
			c.ID = id
			index[id] = len(result)
			result = append(result, c)
		}
	}
	if _, err := dec.Token(); err != nil {
		return goerr.Wrap(err, "failed to read case snapshot")
	}

	compact := result[:0]
	for _, c := range result {
		if c != nil {
			compact = append(compact, c)
		}
	}
	*l = compact
	return nil
}
