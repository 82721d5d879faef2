package sources

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// The gov OpenAPI XML envelopes are not feeds, and their tag vocabularies
// drift between service versions, so items are token-scanned into a
// loosely-typed map and mapped into the canonical type afterwards. Upstream
// shape never leaks past the adapter boundary.

// parseXMLItems scans an OpenAPI XML response and returns the result-header
// fields plus one flat tag->text map per <item> element. Text chunks within
// one element are concatenated (the responses mix plain text with CDATA
// sections); across repeated tags the first non-empty value is kept.
func parseXMLItems(data []byte) (map[string]string, []map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	header := make(map[string]string)
	var items []map[string]string
	var current map[string]string
	var elem string
	var pending strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "item" {
				current = make(map[string]string)
				elem = ""
			} else {
				elem = t.Name.Local
			}
			pending.Reset()
		case xml.CharData:
			if elem != "" {
				pending.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "item" && current != nil {
				items = append(items, current)
				current = nil
			} else if elem != "" {
				text := strings.TrimSpace(pending.String())
				if text != "" {
					if current != nil {
						if current[elem] == "" {
							current[elem] = text
						}
					} else {
						switch elem {
						case "resultCode", "returnReasonCode", "resultMsg", "returnAuthMsg":
							header[elem] = text
						}
					}
				}
			}
			elem = ""
			pending.Reset()
		}
	}

	return header, items, nil
}

// resultOK checks the OpenAPI envelope status. Both header vocabularies are
// probed; an absent code is treated as success since some services omit the
// header entirely on the happy path.
func resultOK(header map[string]string) bool {
	code, ok := header["resultCode"]
	if !ok {
		code, ok = header["returnReasonCode"]
	}
	if !ok || code == "" {
		return true
	}
	return code == "00" || code == "NORMAL_SERVICE"
}

// pick returns the first non-empty value among the given tag aliases.
// Different upstream service versions use different vocabularies for the
// same semantic field.
func pick(item map[string]string, aliases ...string) string {
	for _, alias := range aliases {
		if v := item[alias]; v != "" {
			return v
		}
	}
	return ""
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8":
		return input, nil
	case "euc-kr", "ksc5601", "ks_c_5601-1987", "cp949":
		return transform.NewReader(input, korean.EUCKR.NewDecoder()), nil
	}
	return nil, fmt.Errorf("unsupported charset: %s", charset)
}
