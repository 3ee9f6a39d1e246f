package ps

import (
	"errors"
	"fmt"
	"strings"
)

var errMalformed = errors.New("malformed page device dictionary")

// PageDevice is an ordered set of setpagedevice entries. Values are kept as
// source text, they are validated for balance only.
type PageDevice struct {
	keys   []string
	values map[string]string
}

func NewPageDevice() *PageDevice {
	return &PageDevice{values: make(map[string]string)}
}

func (d *PageDevice) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Put sets key, new keys keep insertion order.
func (d *PageDevice) Put(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *PageDevice) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Merge copies entries of o over d.
func (d *PageDevice) Merge(o *PageDevice) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		d.Put(k, o.values[k])
	}
}

func (d *PageDevice) Clone() *PageDevice {
	c := NewPageDevice()
	c.Merge(d)
	return c
}

func (d *PageDevice) String() string {
	var sb strings.Builder
	sb.WriteString("<<")
	for _, k := range d.keys {
		sb.WriteString(" /" + k + " " + d.values[k])
	}
	sb.WriteString(" >>")
	return sb.String()
}

// ParsePageDevice reads a dictionary fragment like
// "<< /Duplex true /PageSize [595 842] >>". Surrounding brackets are
// optional.
func ParsePageDevice(src string) (*PageDevice, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) >= 2 && toks[0] == "<<" && toks[len(toks)-1] == ">>" {
		toks = toks[1 : len(toks)-1]
	}
	d := NewPageDevice()
	for i := 0; i < len(toks); {
		key := toks[i]
		if !strings.HasPrefix(key, "/") || len(key) < 2 {
			return nil, fmt.Errorf("%w: expected key, got %q", errMalformed, key)
		}
		i++
		if i >= len(toks) {
			return nil, fmt.Errorf("%w: no value for %s", errMalformed, key)
		}
		end, err := valueEnd(toks, i)
		if err != nil {
			return nil, err
		}
		d.Put(key[1:], strings.Join(toks[i:end], " "))
		i = end
	}
	return d, nil
}

// valueEnd returns the index just past the value starting at i.
func valueEnd(toks []string, i int) (int, error) {
	open := map[string]string{"[": "]", "{": "}", "<<": ">>"}
	closing, ok := open[toks[i]]
	if !ok {
		if toks[i] == "]" || toks[i] == "}" || toks[i] == ">>" {
			return 0, fmt.Errorf("%w: unexpected %q", errMalformed, toks[i])
		}
		return i + 1, nil
	}
	var stack []string
	stack = append(stack, closing)
	for j := i + 1; j < len(toks); j++ {
		t := toks[j]
		if c, ok := open[t]; ok {
			stack = append(stack, c)
			continue
		}
		if t == "]" || t == "}" || t == ">>" {
			if stack[len(stack)-1] != t {
				return 0, fmt.Errorf("%w: mismatched %q", errMalformed, t)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return j + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unterminated %q", errMalformed, toks[i])
}

// tokenize splits PostScript source into tokens keeping strings intact.
func tokenize(src string) ([]string, error) {
	var toks []string
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f':
			i++
		case c == '%':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '[' || c == ']' || c == '{' || c == '}':
			toks = append(toks, string(c))
			i++
		case strings.HasPrefix(src[i:], "<<"), strings.HasPrefix(src[i:], ">>"):
			toks = append(toks, src[i:i+2])
			i += 2
		case c == '(':
			end, err := stringEnd(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, src[i:end])
			i = end
		case c == '<':
			end := strings.IndexByte(src[i:], '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated hex string", errMalformed)
			}
			toks = append(toks, src[i:i+end+1])
			i += end + 1
		case c == ')' || c == '>':
			return nil, fmt.Errorf("%w: unexpected %q", errMalformed, c)
		default:
			j := i
			if c == '/' {
				j++
			}
			for j < len(src) && !strings.ContainsRune(" \t\r\n\f[]{}()<>/%", rune(src[j])) {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("%w: unexpected %q", errMalformed, c)
			}
			toks = append(toks, src[i:j])
			i = j
		}
	}
	return toks, nil
}

func stringEnd(src string, i int) (int, error) {
	depth := 0
	for j := i; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unterminated string", errMalformed)
}
