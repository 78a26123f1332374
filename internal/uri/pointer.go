package uri

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Pointer is the parsed form of an asset content pointer. Sellers supply
// pointers in one of three shapes:
//   - a raw content CID ("QmXxx", "bafyXxx")
//   - an ipfs:// URI ("ipfs://QmXxx")
//   - a composite JSON document: {"data": "<cid>", "metadata": "<cid>"}
//
// The ledger stores pointers opaquely; parsing happens only at content
// resolution time.
type Pointer struct {
	// DataCID is the CID of the data payload
	DataCID string
	// MetadataCID is the CID of the descriptive metadata, when present
	MetadataCID string
}

type compositePointer struct {
	Data     string `json:"data"`
	Metadata string `json:"metadata"`
}

// ParsePointer parses a content pointer into its data and metadata CIDs
func ParsePointer(raw string) (*Pointer, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty content pointer")
	}

	if strings.HasPrefix(trimmed, "{") {
		var composite compositePointer
		if err := json.Unmarshal([]byte(trimmed), &composite); err != nil {
			return nil, fmt.Errorf("malformed composite pointer: %w", err)
		}
		if composite.Data == "" {
			return nil, fmt.Errorf("composite pointer missing data field")
		}
		return &Pointer{
			DataCID:     stripScheme(composite.Data),
			MetadataCID: stripScheme(composite.Metadata),
		}, nil
	}

	return &Pointer{DataCID: stripScheme(trimmed)}, nil
}

func stripScheme(cid string) string {
	cid = strings.TrimSpace(cid)
	cid = strings.TrimPrefix(cid, "ipfs://")
	return strings.TrimPrefix(cid, "/ipfs/")
}
