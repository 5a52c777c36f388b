package board

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	idPrefix = "tab"
	idSep    = "-msg"
)

// EncodeID renders a (tabKey, index) pair as a message id of the form
// tab<tabKey>-msg<index>.
func EncodeID(tabKey string, index int) string {
	return idPrefix + tabKey + idSep + strconv.Itoa(index)
}

// DecodeID parses a message id back into its tab key and index. The tab key
// must parse as a non-zero integer: key "0" is rejected, matching the
// truthiness check the wire format inherited. The index must be a
// non-negative integer. The returned key is the canonical decimal form of
// the parsed value.
func DecodeID(id string) (tabKey string, index int, err error) {
	if !strings.HasPrefix(id, idPrefix) {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	rest := strings.TrimPrefix(id, idPrefix)
	head, tail, found := strings.Cut(rest, idSep)
	if !found {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	tab, terr := strconv.Atoi(head)
	if terr != nil || tab == 0 {
		return "", 0, fmt.Errorf("%w: bad tab key in %q", ErrInvalidID, id)
	}
	idx, ierr := strconv.Atoi(tail)
	if ierr != nil || idx < 0 {
		return "", 0, fmt.Errorf("%w: bad index in %q", ErrInvalidID, id)
	}
	return strconv.Itoa(tab), idx, nil
}
