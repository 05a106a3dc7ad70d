package seo

import "strings"

// Attr is a single attribute of a rendered element. Elements keep their
// attributes in the order they are given.
type Attr struct {
	Key   string
	Value string
}

// Meta renders a <meta> element. Every value is escaped.
func Meta(attrs ...Attr) string {
	return voidElement("meta", attrs)
}

// Link renders a <link> element. Every value is escaped.
func Link(attrs ...Attr) string {
	return voidElement("link", attrs)
}

// OpenGraphMeta renders <meta property="og:{property}" content="{content}">.
func OpenGraphMeta(property, content string) string {
	return Meta(Attr{"property", "og:" + property}, Attr{"content", content})
}

// Void elements are written without a trailing slash.
func voidElement(name string, attrs []Attr) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(Escape(a.Value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}
