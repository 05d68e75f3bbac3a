package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	blocks, err := Parse("G0 R90\nC1 ; close clamp\n\nG0 J-0.5\n")
	assert.NoError(t, err)
	assert.Equal(t, []Block{
		{{W: 'G', Arg: 0}, {W: 'R', Arg: 90}},
		{{W: 'C', Arg: 1}},
		{{W: 'G', Arg: 0}, {W: 'J', Arg: -0.5}},
	}, blocks)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("hello world\n")
	assert.Error(t, err)

	// repeated word in a block
	_, err = Parse("R1 R2\n")
	assert.Error(t, err)
}

func TestParse_NoTrailingNewline(t *testing.T) {
	blocks, err := Parse("G0 X1")
	assert.NoError(t, err)
	assert.Equal(t, []Block{{{W: 'G', Arg: 0}, {W: 'X', Arg: 1}}}, blocks)
}

func TestBlock_String(t *testing.T) {
	b := Block{{W: 'G', Arg: 0}, {W: 'R', Arg: 90.25}, {W: 'C', Arg: 1}}
	assert.Equal(t, "G0 R90.25 C1", b.String())
}

func TestBlock_Arg(t *testing.T) {
	b := MustParse("G0 R90\n")[0]

	ok, val := b.Arg('R')
	assert.True(t, ok)
	assert.Equal(t, 90.0, val)

	ok, _ = b.Arg('J')
	assert.False(t, ok)
}

func TestWord_IsAxis(t *testing.T) {
	assert.True(t, Word{W: 'J'}.IsAxis())
	assert.True(t, Word{W: 'R'}.IsAxis())
	assert.True(t, Word{W: 'C'}.IsAxis())
	assert.False(t, Word{W: 'G'}.IsAxis())
}
