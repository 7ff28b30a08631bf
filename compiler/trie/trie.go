package trie

import (
	"github.com/slowlang/exprc/compiler/token"
)

type (
	Trie struct {
		root node
	}

	node struct {
		ch   map[byte]*node
		leaf bool
		kind token.Kind
	}

	// Checker walks the Trie one character at a time.
	// It remembers all the characters it was fed even after it left the Trie,
	// so the word can be recovered as an identifier.
	Checker struct {
		t   *Trie
		cur *node // nil once dead

		buf []byte
	}
)

// Keywords returns the Trie of reserved words.
func Keywords() *Trie {
	t := New()

	for _, k := range []token.Kind{
		token.Break,
		token.Continue,
		token.Return,
		token.If,
		token.Else,
		token.For,
		token.While,
		token.Print,
		token.TInt,
		token.TDouble,
		token.TFloat,
		token.TString,
	} {
		t.Insert(k.String(), k)
	}

	return t
}

func New() *Trie {
	return &Trie{}
}

func (t *Trie) Insert(word string, k token.Kind) {
	cur := &t.root

	for i := 0; i < len(word); i++ {
		c := word[i]

		next, ok := cur.ch[c]
		if !ok {
			if cur.ch == nil {
				cur.ch = make(map[byte]*node)
			}

			next = &node{}
			cur.ch[c] = next
		}

		cur = next
	}

	cur.leaf = true
	cur.kind = k
}

func (t *Trie) Query(word string) token.Kind {
	cur := &t.root

	for i := 0; i < len(word); i++ {
		next, ok := cur.ch[word[i]]
		if !ok {
			return token.None
		}

		cur = next
	}

	if !cur.leaf {
		return token.None
	}

	return cur.kind
}

func (t *Trie) Checker() *Checker {
	return &Checker{
		t:   t,
		cur: &t.root,
	}
}

func (c *Checker) Update(ch byte) {
	c.buf = append(c.buf, ch)

	if c.cur == nil {
		return
	}

	c.cur = c.cur.ch[ch]
}

// Check returns the keyword kind if fed characters spell a reserved word
// and token.None otherwise.
// The Checker is reset after that, Text must be taken before Check.
func (c *Checker) Check() (k token.Kind) {
	if c.cur != nil && c.cur.leaf {
		k = c.cur.kind
	}

	c.cur = &c.t.root
	c.buf = c.buf[:0]

	return k
}

func (c *Checker) Text() string {
	return string(c.buf)
}
