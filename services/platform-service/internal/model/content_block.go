package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type BlockType string

const (
	BlockTypeText    BlockType = "text"
	BlockTypeImage   BlockType = "image"
	BlockTypeVideo   BlockType = "video"
	BlockTypeHero    BlockType = "hero"
	BlockTypeCallout BlockType = "callout"
)

var (
	ErrUnknownBlockType = errors.New("unknown content block type")
	ErrMissingBlockData = errors.New("content block has no data")
)

// BlockData is the payload of a content block. Each block type has exactly
// one implementation.
type BlockData interface {
	BlockType() BlockType
}

type TextBlock struct {
	Text string `bson:"text" json:"text" validate:"required"`
}

type ImageBlock struct {
	URL string `bson:"url"           json:"url"           validate:"required,url"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type VideoBlock struct {
	URL     string `bson:"url"               json:"url"               validate:"required,url"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}

type HeroBlock struct {
	Heading    string `bson:"heading"               json:"heading"               validate:"required"`
	Subheading string `bson:"subheading,omitempty"  json:"subheading,omitempty"`
	ImageURL   string `bson:"image_url,omitempty"   json:"image_url,omitempty"   validate:"omitempty,url"`
	CTALabel   string `bson:"cta_label,omitempty"   json:"cta_label,omitempty"   validate:"required_with=CTAURL"`
	CTAURL     string `bson:"cta_url,omitempty"     json:"cta_url,omitempty"     validate:"omitempty,url"`
}

type CalloutBlock struct {
	Tone string `bson:"tone" json:"tone" validate:"required,oneof=info success warning danger"`
	Text string `bson:"text" json:"text" validate:"required"`
}

func (TextBlock) BlockType() BlockType    { return BlockTypeText }
func (ImageBlock) BlockType() BlockType   { return BlockTypeImage }
func (VideoBlock) BlockType() BlockType   { return BlockTypeVideo }
func (HeroBlock) BlockType() BlockType    { return BlockTypeHero }
func (CalloutBlock) BlockType() BlockType { return BlockTypeCallout }

// NewBlockData returns an empty payload for t, ready to be decoded into.
func NewBlockData(t BlockType) (BlockData, error) {
	switch t {
	case BlockTypeText:
		return &TextBlock{}, nil
	case BlockTypeImage:
		return &ImageBlock{}, nil
	case BlockTypeVideo:
		return &VideoBlock{}, nil
	case BlockTypeHero:
		return &HeroBlock{}, nil
	case BlockTypeCallout:
		return &CalloutBlock{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
	}
}

// DecodeBlockDataJSON decodes a JSON payload for the given block type.
func DecodeBlockDataJSON(t BlockType, raw json.RawMessage) (BlockData, error) {
	data, err := NewBlockData(t)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrMissingBlockData
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, err
	}
	return data, nil
}

// ContentBlock is an ordered, typed section of a page. Its type is the type of
// its Data.
type ContentBlock struct {
	ID     bson.ObjectID
	PageID bson.ObjectID
	Order  int
	Data   BlockData
}

// Type returns the block type, or "" when Data is unset.
func (b ContentBlock) Type() BlockType {
	if b.Data == nil {
		return ""
	}
	return b.Data.BlockType()
}

type contentBlockDocument struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	PageID bson.ObjectID `bson:"page_id"`
	Type   BlockType     `bson:"type"`
	Order  int           `bson:"order"`
	Data   bson.Raw      `bson:"data"`
}

// MarshalBSON stores the block with its type as discriminator.
func (b ContentBlock) MarshalBSON() ([]byte, error) {
	if b.Data == nil {
		return nil, ErrMissingBlockData
	}

	data, err := bson.Marshal(b.Data)
	if err != nil {
		return nil, err
	}

	return bson.Marshal(contentBlockDocument{
		ID:     b.ID,
		PageID: b.PageID,
		Type:   b.Data.BlockType(),
		Order:  b.Order,
		Data:   data,
	})
}

// UnmarshalBSON decodes data into the variant selected by the stored type.
func (b *ContentBlock) UnmarshalBSON(raw []byte) error {
	var doc contentBlockDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}

	data, err := NewBlockData(doc.Type)
	if err != nil {
		return err
	}
	if len(doc.Data) == 0 {
		return ErrMissingBlockData
	}
	if err := bson.Unmarshal(doc.Data, data); err != nil {
		return err
	}

	b.ID = doc.ID
	b.PageID = doc.PageID
	b.Order = doc.Order
	b.Data = data

	return nil
}
