package export

import (
	"encoding/json"
)

// Score is a three-state optional numeric field. A field can be absent from
// the document, present but explicitly null (apiScore pending computation),
// or present with a value. Zero-value punning on a bare float64 would merge
// the first two states, so presence is tracked explicitly.
type Score struct {
	Present bool
	Valid   bool // false when the field was null
	Value   float64
}

// Num returns a Score carrying a value. Used to build documents in code.
func Num(v float64) Score {
	return Score{Present: true, Valid: true, Value: v}
}

// Null returns a Score that was present but explicitly null.
func Null() Score {
	return Score{Present: true}
}

func (s *Score) UnmarshalJSON(data []byte) error {
	s.Present = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &s.Value); err != nil {
		return err
	}
	s.Valid = true
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Record is one calibration entry or session impression. All fields are
// optional in the document; missing strings decode as "".
type Record struct {
	Subreddit string `json:"subreddit"`
	PostID    string `json:"postId"`
	Bucket    string `json:"bucket"`
	Heuristic Score  `json:"heuristicScore"`
	API       Score  `json:"apiScore"`
}

// Session groups the impressions shown during one posting session.
type Session struct {
	Posts []Record `json:"posts"`
}

// Document is the top-level engagement export. It is read once and never
// written back; all downstream analysis treats it as immutable.
type Document struct {
	ExportDate  string    `json:"exportDate"`
	Sessions    []Session `json:"sessions"`
	Calibration []Record  `json:"calibration"`
}

// AllPosts flattens every session's impressions into one list, in document order.
func (d *Document) AllPosts() []Record {
	var posts []Record
	for _, s := range d.Sessions {
		posts = append(posts, s.Posts...)
	}
	return posts
}
