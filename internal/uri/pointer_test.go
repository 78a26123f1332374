package uri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafair/df-marketplace/internal/uri"
)

func TestParsePointer(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    *uri.Pointer
		expectedErr string
	}{
		{
			name:     "raw CIDv0",
			raw:      "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
			expected: &uri.Pointer{DataCID: "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"},
		},
		{
			name:     "raw CIDv1",
			raw:      "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
			expected: &uri.Pointer{DataCID: "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"},
		},
		{
			name:     "ipfs scheme",
			raw:      "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
			expected: &uri.Pointer{DataCID: "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"},
		},
		{
			name:     "ipfs path prefix",
			raw:      "/ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
			expected: &uri.Pointer{DataCID: "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"},
		},
		{
			name:     "surrounding whitespace",
			raw:      "  QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG  ",
			expected: &uri.Pointer{DataCID: "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"},
		},
		{
			name: "composite with data and metadata",
			raw:  `{"data": "QmData", "metadata": "QmMeta"}`,
			expected: &uri.Pointer{
				DataCID:     "QmData",
				MetadataCID: "QmMeta",
			},
		},
		{
			name: "composite with schemes",
			raw:  `{"data": "ipfs://QmData", "metadata": "/ipfs/QmMeta"}`,
			expected: &uri.Pointer{
				DataCID:     "QmData",
				MetadataCID: "QmMeta",
			},
		},
		{
			name:     "composite without metadata",
			raw:      `{"data": "QmData"}`,
			expected: &uri.Pointer{DataCID: "QmData"},
		},
		{
			name:        "empty pointer",
			raw:         "",
			expectedErr: "empty content pointer",
		},
		{
			name:        "whitespace only",
			raw:         "   ",
			expectedErr: "empty content pointer",
		},
		{
			name:        "malformed composite",
			raw:         `{"data": QmData}`,
			expectedErr: "malformed composite pointer",
		},
		{
			name:        "composite missing data",
			raw:         `{"metadata": "QmMeta"}`,
			expectedErr: "composite pointer missing data field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pointer, err := uri.ParsePointer(tt.raw)
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, pointer)
		})
	}
}
