package captable

import (
	"encoding/hex"
	"strings"
)

// DCS framing of XTGETTCAP replies.
const (
	replyValid   = "\x1bP1+r"
	replyInvalid = "\x1bP0+r"
	stringTerm   = "\x1b\\"
)

// XTGETTCAP answers a DCS "+q" request payload: hex-encoded capability names
// separated by ';'. It returns one reply per requested name, in order.
//
// Known booleans are answered with ESC P 1 + r <name> ESC \ and other known
// capabilities with ESC P 1 + r <name> = <value> ESC \, the value hex
// encoded in upper case. Unknown names and names that are not valid hex get
// ESC P 0 + r <name> ESC \. The name is echoed exactly as received.
func (t *Table) XTGETTCAP(request string) string {
	var b strings.Builder
	for _, hexName := range strings.Split(request, ";") {
		b.WriteString(t.Reply(hexName))
	}
	return b.String()
}

// Reply answers a single hex-encoded capability name.
func (t *Table) Reply(hexName string) string {
	name, err := hex.DecodeString(hexName)
	if err != nil {
		return replyInvalid + hexName + stringTerm
	}

	value, ok := t.Lookup(string(name))
	if !ok {
		return replyInvalid + hexName + stringTerm
	}

	if value == "" {
		return replyValid + hexName + stringTerm
	}

	return replyValid + hexName + "=" + strings.ToUpper(hex.EncodeToString([]byte(value))) + stringTerm
}

// Request encodes capability names as an XTGETTCAP request payload.
func Request(names ...string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = hex.EncodeToString([]byte(n))
	}
	return strings.Join(parts, ";")
}
