// Package captable reads the binary capability table embedded by a host
// program: a run of NUL-terminated name and value pairs, sorted by name.
//
// A table is usually recovered from the C string literal (or Go string
// constant) that the compiler generated:
//
//	t, err := captable.DecodeLiteral(literal)
//	if err != nil {
//	    return err
//	}
//	if v, ok := t.Lookup("Co"); ok {
//	    fmt.Println("colors:", v)
//	}
//
// Booleans are stored with an empty value. [Table.XTGETTCAP] answers a DCS
// "+q" request the way a terminal emulator would.
package captable
