package docx

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cbroglie/mustache"
)

// textNode matches a <w:t> element and captures its text content.
var textNode = regexp.MustCompile(`(?s)<w:t(?:\s[^>/]*)?>(.*?)</w:t>`)

// paragraphOpen matches the start tag of a non-empty paragraph.
var paragraphOpen = regexp.MustCompile(`<w:p[\s>]`)

// preserveOpen replaces the open tag of rewritten text nodes so that
// leading and trailing spaces of substituted values survive.
const preserveOpen = `<w:t xml:space="preserve">`

// lineBreak splits a text node around a <w:br/> inside the same run.
const lineBreak = `</w:t><w:br/>` + preserveOpen

// Run markers precede the text of every node in the source handed to the
// mustache engine. Both runes are stripped from template text and values.
const (
	markOpen  = '\uE000'
	markClose = '\uE001'
)

var marker = regexp.MustCompile("\uE000([0-9]+)\uE001")

var markerStrip = strings.NewReplacer(string(markOpen), "", string(markClose), "")

func stripMarkers(s string) string {
	return markerStrip.Replace(s)
}

// standalonePrefixes mark tags that produce no text of their own.
const standalonePrefixes = "#^/!"

// node is one <w:t> element of a part.
type node struct {
	start, end int    // byte range of the whole element
	orig       string // unescaped content
	text       string // content with split tags gathered
}

// paragraph groups the nodes of one <w:p>. start is -1 when the element
// bounds could not be found; such a paragraph is never removed.
type paragraph struct {
	start, end   int
	nodes        []int
	onlySections bool
}

// part is a parsed templated part.
type part struct {
	xml        string
	nodes      []node
	paragraphs []paragraph
	templated  bool
}

// parsePart splits xml into text nodes and paragraphs and gathers every tag
// into the node where it opens. A tag must open and close in one paragraph.
func parsePart(xml string) (*part, error) {
	p := &part{xml: xml}
	matches := textNode.FindAllStringSubmatchIndex(xml, -1)
	if len(matches) == 0 {
		return p, nil
	}

	p.nodes = make([]node, len(matches))
	for i, m := range matches {
		text := stripMarkers(html.UnescapeString(xml[m[2]:m[3]]))
		p.nodes[i] = node{start: m[0], end: m[1], orig: text, text: text}
	}

	starts := paragraphOpen.FindAllStringIndex(xml, -1)
	for _, group := range groupParagraphs(xml, matches) {
		texts := make([]string, len(group))
		for i, n := range group {
			texts[i] = p.nodes[n].text
		}
		gathered, tagged, onlySections, err := gatherTags(texts)
		if err != nil {
			return nil, err
		}
		if tagged {
			p.templated = true
			for i, n := range group {
				p.nodes[n].text = gathered[i]
			}
		}
		start, end := paragraphBounds(xml, starts, p.nodes[group[0]].start, p.nodes[group[len(group)-1]].end)
		p.paragraphs = append(p.paragraphs, paragraph{
			start:        start,
			end:          end,
			nodes:        group,
			onlySections: tagged && onlySections,
		})
	}
	return p, nil
}

// groupParagraphs groups text node indexes that share a paragraph.
// A closing </w:p> between two nodes starts a new group.
func groupParagraphs(xml string, matches [][]int) [][]int {
	var groups [][]int
	var cur []int
	for i, m := range matches {
		if i > 0 && strings.Contains(xml[matches[i-1][1]:m[0]], "</w:p>") {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, i)
	}
	return append(groups, cur)
}

// paragraphBounds finds the <w:p> element around the byte range
// [first, last). starts holds the offsets of every paragraph start tag.
func paragraphBounds(xml string, starts [][]int, first, last int) (int, int) {
	i := sort.Search(len(starts), func(i int) bool { return starts[i][0] >= first })
	if i == 0 {
		return -1, -1
	}
	closing := strings.Index(xml[last:], "</w:p>")
	if closing < 0 {
		return -1, -1
	}
	return starts[i-1][0], last + closing + len("</w:p>")
}

// gatherTags moves every tag of one paragraph into the node where it opens.
// It reports whether the paragraph holds a tag and whether its text is
// nothing but section tags and whitespace.
func gatherTags(texts []string) (out []string, tagged, onlySections bool, err error) {
	joined := strings.Join(texts, "")
	if !strings.Contains(joined, OpenDelim) && !strings.Contains(joined, CloseDelim) {
		return texts, false, false, nil
	}

	owner := make([]int, 0, len(joined))
	for i, t := range texts {
		for range len(t) {
			owner = append(owner, i)
		}
	}

	b := make([]strings.Builder, len(texts))
	onlySections = true
	for i := 0; i < len(joined); {
		switch {
		case strings.HasPrefix(joined[i:], OpenDelim):
			end := strings.Index(joined[i+len(OpenDelim):], CloseDelim)
			if end < 0 {
				return nil, false, false, fmt.Errorf("%w: %q", ErrUnclosedTag, excerpt(joined[i:]))
			}
			size := len(OpenDelim) + end + len(CloseDelim)
			// {{{name}}} closes one brace later.
			if strings.HasPrefix(joined[i+len(OpenDelim):], "{") && strings.HasPrefix(joined[i+size:], "}") {
				size++
			}
			tag := joined[i : i+size]
			name := strings.TrimSpace(strings.Trim(tag, "{}"))
			if name == "" {
				return nil, false, false, ErrEmptyTag
			}
			if !strings.ContainsRune(standalonePrefixes, rune(name[0])) {
				onlySections = false
			}
			b[owner[i]].WriteString(tag)
			i += size
		case strings.HasPrefix(joined[i:], CloseDelim):
			return nil, false, false, fmt.Errorf("%w: %q", ErrUnopenedTag, excerpt(joined[max(0, i-excerptLen):i+len(CloseDelim)]))
		default:
			if !isSpace(joined[i]) {
				onlySections = false
			}
			b[owner[i]].WriteByte(joined[i])
			i++
		}
	}

	out = make([]string, len(b))
	for i := range b {
		out[i] = b[i].String()
	}
	return out, true, onlySections, nil
}

// source returns the mustache source of the part: each node's text behind
// its marker.
func (p *part) source() string {
	var b strings.Builder
	for i, n := range p.nodes {
		b.WriteRune(markOpen)
		b.WriteString(strconv.Itoa(i))
		b.WriteRune(markClose)
		b.WriteString(n.text)
	}
	return b.String()
}

// compile parses the part with the mustache engine. Values are emitted
// raw; XML escaping happens when nodes are written back.
func (p *part) compile() (*mustache.Template, error) {
	tmpl, err := mustache.ParseStringPartialsRaw(p.source(), noPartials{}, true)
	if err != nil {
		return nil, syntaxError(err)
	}
	return tmpl, nil
}

// noPartials resolves every partial to empty text.
type noPartials struct{}

func (noPartials) Get(string) (string, error) { return "", nil }

func syntaxError(err error) error {
	var perr mustache.ParseError
	if !errors.As(err, &perr) {
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	switch perr.Code {
	case mustache.ErrSectionNoClosingTag, mustache.ErrInterleavedClosingTag, mustache.ErrUnmatchedCloseTag:
		return fmt.Errorf("%w: %s", ErrUnbalancedSection, strings.TrimPrefix(perr.Error(), fmt.Sprintf("line %d: ", perr.Line)))
	case mustache.ErrEmptyTag:
		return ErrEmptyTag
	case mustache.ErrUnmatchedOpenTag:
		return ErrUnclosedTag
	default:
		return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
}

// renderPart renders one templated part against values. It reports false
// when the part holds no tags and is returned unchanged.
func renderPart(content []byte, values map[string]string) ([]byte, bool, error) {
	p, err := parsePart(string(content))
	if err != nil {
		return nil, false, err
	}
	if !p.templated {
		return content, false, nil
	}
	tmpl, err := p.compile()
	if err != nil {
		return nil, false, err
	}
	rendered, err := tmpl.Render(values)
	if err != nil {
		return nil, false, err
	}
	texts, shown := p.distribute(rendered)
	return []byte(p.rebuild(texts, shown)), true, nil
}

// distribute splits rendered output back into per-node texts. shown[i] is
// false when node i fell inside a section that was not rendered.
func (p *part) distribute(rendered string) (texts []string, shown []bool) {
	texts = make([]string, len(p.nodes))
	shown = make([]bool, len(p.nodes))
	locs := marker.FindAllStringSubmatchIndex(rendered, -1)
	for k, loc := range locs {
		i, err := strconv.Atoi(rendered[loc[2]:loc[3]])
		if err != nil || i >= len(p.nodes) {
			continue
		}
		end := len(rendered)
		if k+1 < len(locs) {
			end = locs[k+1][0]
		}
		texts[i] += rendered[loc[1]:end]
		shown[i] = true
	}
	return texts, shown
}

// rebuild writes texts into the part's nodes and drops paragraphs that
// only held section tags or that a hidden section swallowed whole.
func (p *part) rebuild(texts []string, shown []bool) string {
	xml := p.xml
	var b strings.Builder
	b.Grow(len(xml))
	last := 0
	for _, para := range p.paragraphs {
		if para.start >= last && p.droppable(para, shown) {
			b.WriteString(xml[last:para.start])
			last = para.end
			continue
		}
		for _, i := range para.nodes {
			n := p.nodes[i]
			if n.start < last || (shown[i] && texts[i] == n.orig) {
				continue
			}
			b.WriteString(xml[last:n.start])
			b.WriteString(preserveOpen)
			writeValue(&b, texts[i])
			b.WriteString("</w:t>")
			last = n.end
		}
	}
	b.WriteString(xml[last:])
	return b.String()
}

func (p *part) droppable(para paragraph, shown []bool) bool {
	if para.start < 0 || soleCellParagraph(p.xml, para.start, para.end) {
		return false
	}
	if para.onlySections {
		return true
	}
	for _, i := range para.nodes {
		if shown[i] {
			return false
		}
	}
	return true
}

// soleCellParagraph reports whether the paragraph is the only one in a
// table cell, which Word requires to keep.
func soleCellParagraph(xml string, start, end int) bool {
	before := strings.TrimSpace(xml[:start])
	after := strings.TrimSpace(xml[end:])
	opensCell := strings.HasSuffix(before, "<w:tc>") || strings.HasSuffix(before, "</w:tcPr>")
	return opensCell && strings.HasPrefix(after, "</w:tc>")
}

func writeValue(b *strings.Builder, value string) {
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\r':
			if i+1 < len(value) && value[i+1] == '\n' {
				continue
			}
			b.WriteString(lineBreak)
		case '\n':
			b.WriteString(lineBreak)
		default:
			writeEscaped(b, value[i])
		}
	}
}

func writeEscaped(b *strings.Builder, c byte) {
	switch c {
	case '&':
		b.WriteString("&amp;")
	case '<':
		b.WriteString("&lt;")
	case '>':
		b.WriteString("&gt;")
	default:
		b.WriteByte(c)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// excerptLen bounds the tag context quoted in error messages.
const excerptLen = 40

// excerpt shortens s for error messages.
func excerpt(s string) string {
	if len(s) <= excerptLen {
		return s
	}
	return s[:excerptLen] + "..."
}
