package projectfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/de-tools/geff/pkg/models/domain"
	"golang.org/x/exp/maps"
)

// setAnchors precede the 16-bit set counters of each category.
var setAnchors = map[domain.SetCategory][]byte{
	domain.SetCategoryProject: append(append([]byte{0x24, 0x40}, make([]byte, 24)...), append([]byte{0x01}, make([]byte, 7)...)...),
	domain.SetCategoryFact:    append([]byte{0xF4, 0xBF}, make([]byte, 16)...),
}

// DecodeSetCounts decodes every known set counter from the content of a
// project file.
func DecodeSetCounts(data []byte) (domain.SetCounts, error) {
	categories := maps.Keys(setAnchors)
	slices.Sort(categories)

	counts := make(domain.SetCounts, len(categories))
	for _, category := range categories {
		n, err := decodeSetCount(data, category, setAnchors[category])
		if err != nil {
			return nil, err
		}
		counts[category] = n
	}
	return counts, nil
}

func decodeSetCount(data []byte, category domain.SetCategory, anchor []byte) (int, error) {
	field := fmt.Sprintf("set count %q", category)

	start := bytes.LastIndex(data, anchor)
	if start < 0 {
		return 0, newFormatError(field, "anchor not found")
	}

	offset := start + len(anchor)
	if offset+2 > len(data) {
		return 0, newFormatError(field, "counter outside file bounds")
	}
	return int(int16(binary.LittleEndian.Uint16(data[offset:]))), nil
}
