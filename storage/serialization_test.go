package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredDocumentRoundTrip(t *testing.T) {
	doc := &StoredDocument{
		ID:   42,
		Body: "name: widget | price: 9.99",
		Metadata: map[string]any{
			"source":    "products.csv",
			"row_index": 3,
			"name":      "widget",
		},
		Vector:     []float32{0.25, -0.5, 1.0},
		InsertedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := MarshalStoredDocument(doc)
	require.NoError(t, err)

	got, err := UnmarshalStoredDocument(data)
	require.NoError(t, err)

	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Body, got.Body)
	assert.Equal(t, doc.Vector, got.Vector)
	assert.True(t, doc.InsertedAt.Equal(got.InsertedAt))
	assert.Equal(t, "products.csv", got.Metadata["source"])
	// JSON numbers decode as float64
	assert.EqualValues(t, 3, got.Metadata["row_index"])
}

func TestCollectionMetaRoundTrip(t *testing.T) {
	meta := &CollectionMeta{
		Name:          "products",
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Dimension:     1536,
		DocumentCount: 7,
	}

	data, err := MarshalCollectionMeta(meta)
	require.NoError(t, err)

	got, err := UnmarshalCollectionMeta(data)
	require.NoError(t, err)

	assert.Equal(t, meta.Name, got.Name)
	assert.Equal(t, meta.Dimension, got.Dimension)
	assert.Equal(t, meta.DocumentCount, got.DocumentCount)
	assert.True(t, meta.CreatedAt.Equal(got.CreatedAt))
}

func TestUnmarshalCorruptData(t *testing.T) {
	_, err := UnmarshalStoredDocument([]byte("{not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalCollectionMeta([]byte{0xff, 0x00})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
