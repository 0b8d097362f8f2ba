package nemesis

import (
	"errors"
	"fmt"
	"io"

	"github.com/boljen/go-bitmap"
	"github.com/icza/bitio"
)

// maxTrieNodes is the size of a complete binary tree holding every code of up
// to [MaxCodeLength] bits.
const maxTrieNodes = 1<<(MaxCodeLength+1) - 1

// trieNode is an index into a decodeTrie. The root is always 0, so 0 also
// serves as "no child".
type trieNode int16

const trieRoot trieNode = 0

// decodeTrie is a binary tree mapping codes to nibble runs. Nodes live in
// fixed-size arrays; `leaves` has a bit set for each node that terminates a
// code.
type decodeTrie struct {
	children [][2]trieNode
	runs     []NibbleRun
	leaves   bitmap.Bitmap
}

func newDecodeTrie() *decodeTrie {
	trie := &decodeTrie{
		children: make([][2]trieNode, 1, maxTrieNodes),
		runs:     make([]NibbleRun, 1, maxTrieNodes),
		leaves:   bitmap.New(maxTrieNodes),
	}
	return trie
}

// buildDecodeTrie creates a trie from the entries of a code table, then adds
// the escape code for inline runs.
func buildDecodeTrie(entries []TableEntry) (*decodeTrie, error) {
	trie := newDecodeTrie()
	for _, entry := range entries {
		err := trie.insert(entry.Code, entry.Run)
		if err != nil {
			return nil, err
		}
	}

	err := trie.insert(
		Code{Bits: escapeCode, Length: escapeLength},
		NibbleRun{Nibble: 0, Count: escapeRunCount},
	)
	if err != nil {
		return nil, err
	}
	return trie, nil
}

func (trie *decodeTrie) isLeaf(node trieNode) bool {
	return trie.leaves.Get(int(node))
}

func (trie *decodeTrie) newNode() trieNode {
	trie.children = append(trie.children, [2]trieNode{})
	trie.runs = append(trie.runs, InvalidNibbleRun)
	return trieNode(len(trie.children) - 1)
}

// insert adds a code to the trie. It fails if the code is a prefix of a code
// already in the trie, or if a code already in the trie is a prefix of it.
func (trie *decodeTrie) insert(code Code, run NibbleRun) error {
	if code.Length < 1 || code.Length > MaxCodeLength {
		return ErrMalformedHeader.WithMessage(
			fmt.Sprintf("code for %s has invalid length %d", run, code.Length))
	}

	node := trieRoot
	for bit := int(code.Length) - 1; bit >= 0; bit-- {
		if trie.isLeaf(node) {
			return ErrMalformedHeader.WithMessage(
				fmt.Sprintf("prefix of code %s for %s is already used as a code", code, run))
		}

		side := (code.Bits >> uint(bit)) & 1
		child := trie.children[node][side]
		if child == trieRoot {
			child = trie.newNode()
			trie.children[node][side] = child
		}
		node = child
	}

	if trie.children[node] != [2]trieNode{} {
		return ErrMalformedHeader.WithMessage(
			fmt.Sprintf("code %s for %s is already used as a prefix", code, run))
	}
	trie.leaves.Set(int(node), true)
	trie.runs[node] = run
	return nil
}

// readRun walks the trie one bit at a time until it reaches a code, and returns
// the run for that code. Inline runs following the escape code are read from
// the bitstream.
func (trie *decodeTrie) readRun(input *bitio.Reader) (NibbleRun, error) {
	node := trieRoot
	var path Code

	for !trie.isLeaf(node) {
		bit, err := input.ReadBool()
		if err != nil {
			return InvalidNibbleRun, bitstreamError(err)
		}

		side := 0
		path.Bits <<= 1
		path.Length++
		if bit {
			side = 1
			path.Bits |= 1
		}

		node = trie.children[node][side]
		if node == trieRoot {
			return InvalidNibbleRun, ErrInvalidCode.WithMessage(
				fmt.Sprintf("no code starts with %s", path))
		}
	}

	run := trie.runs[node]
	if run.Count != escapeRunCount {
		return run, nil
	}

	// Inline run: three bits of count-1, then the nibble.
	inline, err := input.ReadBits(3 + 4)
	if err != nil {
		return InvalidNibbleRun, bitstreamError(err)
	}
	return NibbleRun{Nibble: byte(inline & 0x0f), Count: byte(inline>>4) + 1}, nil
}

// bitstreamError converts a failed read of the bitstream into an error. Running
// out of input is an invalid code; anything else is an I/O error.
func bitstreamError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrInvalidCode.WithMessage("bitstream ended in the middle of a code").
			Wrap(io.ErrUnexpectedEOF)
	}
	return wrapIOError(err, "reading bitstream")
}
