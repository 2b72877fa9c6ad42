package version

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		segments   []int
		prerelease string
	}{
		{"single component", "1", []int{1, 0, 0}, ""},
		{"two components", "2.400", []int{2, 400, 0}, ""},
		{"lts release", "2.479.1", []int{2, 479, 1}, ""},
		{"four components", "2.479.1.3", []int{2, 479, 1, 3}, ""},
		{"v prefix", "v1.2.3", []int{1, 2, 3}, ""},
		{"pre-release", "2.479-rc1", []int{2, 479, 0}, "rc1"},
		{"build metadata", "1.0+build.5", []int{1, 0, 0}, ""},
		{"surrounding whitespace", "  2.479.1\n", []int{2, 479, 1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.segments, v.Segments())
			assert.Equal(t, tt.prerelease, v.Prerelease())
		})
	}
}

func TestParse_KeepsOriginal(t *testing.T) {
	v, err := Parse(" 2.54 ")
	require.NoError(t, err)
	assert.Equal(t, "2.54", v.String())
}

func TestVersion_ZeroValue(t *testing.T) {
	var zero Version
	assert.Equal(t, "", zero.String())
	assert.Equal(t, 0, zero.Compare(Version{}))
	assert.Equal(t, -1, zero.Compare(MustParse("1.0")))
	assert.Equal(t, 1, MustParse("1.0").Compare(zero))
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "2..1", "2.x", "2.-1", ".", "<html>maintenance</html>"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidVersion)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2.400", "2.479.1", -1},
		{"2.500", "2.479.1", 1},
		{"2.479.1", "2.479.1", 0},
		{"2.400", "2.400.0", 0},
		// string comparison would get these wrong
		{"2.54", "2.164", -1},
		{"2.9", "2.10", -1},
		{"10.0", "9.9", 1},
		{"2.479-rc1", "2.479", -1},
		{"2.479-alpha", "2.479-beta", -1},
		{"1.0+build.5", "1.0", 0},
		{"1.0", "1.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_InvalidInput(t *testing.T) {
	_, err := Compare("not-a-version", "2.479.1")
	assert.ErrorIs(t, err, ErrInvalidVersion)

	_, err = Compare("2.479.1", "")
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"21", 21},
		{"17", 17},
		{"Java 11", 11},
		{"JDK 17", 17},
		{"1.8", 8},
		{"Java 1.8", 8},
		{"11.0.2", 11},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRuntime(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseRuntime("Java")
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func genVersion() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		n := rapid.IntRange(1, 4).Draw(t, "components")
		s := ""
		for i := 0; i < n; i++ {
			if i > 0 {
				s += "."
			}
			s += fmt.Sprint(rapid.IntRange(0, 600).Draw(t, "component"))
		}
		return s
	})
}

func TestCompare_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genVersion().Draw(t, "a")
		b := genVersion().Draw(t, "b")
		c := genVersion().Draw(t, "c")

		ab, err := Compare(a, b)
		if err != nil {
			t.Fatalf("compare %s %s: %v", a, b, err)
		}
		ba, _ := Compare(b, a)
		if ab != -ba {
			t.Fatalf("antisymmetry violated: %s vs %s gave %d and %d", a, b, ab, ba)
		}

		aa, _ := Compare(a, a)
		if aa != 0 {
			t.Fatalf("reflexivity violated for %s", a)
		}

		bc, _ := Compare(b, c)
		ac, _ := Compare(a, c)
		if ab <= 0 && bc <= 0 && ac > 0 {
			t.Fatalf("transitivity violated: %s <= %s <= %s but %s > %s", a, b, c, a, c)
		}

		padded, _ := Compare(a+".0", a)
		if padded != 0 {
			t.Fatalf("trailing zero changed ordering of %s", a)
		}
	})
}
