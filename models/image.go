package models

// Image represents one image of a synset.
//
// Identity is the composite (synset_wnid, imid): the numerical image ID is
// unique within its synset only. The lifecycle of an image is bound to its
// synset; deleting or renaming the synset cascades to its images.
//
// Example JSON representation:
//
//	{
//	  "imid": 9,
//	  "url": "http://farm3.static.flickr.com/2056/2203156496_bf1b977326.jpg",
//	  "date": "2011-10-01"
//	}
type Image struct {
	// SynsetWnid is the owning synset. It is omitted from scoped documents
	// and only rendered in the cross-synset image collection.
	SynsetWnid string `json:"synset_wnid,omitempty" validate:"required,len=9"`

	// Imid is the numerical ID of the image, unique within the synset.
	Imid int `json:"imid"`

	// URL locates the image; its scheme is HTTP or HTTPS only.
	URL string `json:"url" validate:"required,startswith=http"`

	// Date is the last seen date of the image in ISO 8601 format. Optional.
	Date string `json:"date,omitempty"`
}

// Validate checks the struct-level constraints of the image.
func (i *Image) Validate() error {
	return validate.Struct(i)
}
