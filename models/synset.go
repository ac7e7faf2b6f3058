// Package models defines the persistent entities of the WordNet browser.
package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Synset represents a WordNet concept node.
//
// The WordNet hierarchy groups meaningful concepts into synsets, each
// described by multiple words or word phrases and a gloss. A synset has a
// many-to-many "is-a" relationship with itself (its hyponyms) and a
// one-to-many relationship with images.
//
// Example JSON representation:
//
//	{
//	  "wnid": "n02103406",
//	  "words": "working dog",
//	  "gloss": "any of several breeds of usually large powerful dogs ..."
//	}
type Synset struct {
	// Wnid is the WordNet ID: the letter n (only nouns) followed by 8 digits.
	// It is the primary key; renaming it cascades to images and hyponym edges.
	Wnid string `json:"wnid" validate:"required,len=9"`

	// Words are the rough synonyms denoting the synset.
	Words string `json:"words" validate:"required"`

	// Gloss is the brief definition of the synset.
	Gloss string `json:"gloss" validate:"required"`
}

// Validate checks the struct-level constraints of the synset.
func (s *Synset) Validate() error {
	return validate.Struct(s)
}
