// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils provides utility functions for working with HTML.
package htmlutils

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// Node2string appends the visible text below n to sb, one text node per line.
// Script, style and template contents are skipped.
func Node2string(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		tmp := strings.TrimSpace(n.Data)
		if tmp == "" {
			return
		}

		if sb.Len() != 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(tmp)
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Template, atom.Noscript:
			return
		}

		fallthrough
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			Node2string(child, sb)
		}
	}
}

// AsReader wraps r so it's decoded as UTF-8. The charset is taken from
// contentType (e.g. "text/html; charset=iso-8859-1"), or sniffed from the
// document when absent.
func AsReader(r io.Reader, contentType string) (io.Reader, error) {
	if contentType == "" {
		contentType = "text/html"
	}

	rr, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	return rr, nil
}

// AsNode parses an io.Reader as an HTML node.
func AsNode(r io.Reader) (*html.Node, error) {
	n, err := html.Parse(r)
	if nil != err {
		return nil, fmt.Errorf("parsing body as HTML: %w", err)
	}

	return n, nil
}

// Text returns the visible text of the HTML document read from r.
func Text(r io.Reader, contentType string) (string, error) {
	rr, err := AsReader(r, contentType)
	if err != nil {
		return "", err
	}

	n, err := AsNode(rr)
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	Node2string(n, &sb)

	return sb.String(), nil
}
