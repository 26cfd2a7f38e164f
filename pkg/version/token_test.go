package version_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/calvinalkan/vnext/pkg/version"
)

func Test_ParseVersion_Recovers_Token_When_Name_Is_Well_Formed(t *testing.T) {
	t.Parallel()

	files := version.Files()

	cases := []struct {
		name string
		want version.Token
	}{
		{name: "shot_v001.ma", want: "001"},
		{name: "Name_v042.mb", want: "042"},
		{name: "v999.ma", want: "999"},
		{name: "a_v000.tar.gz", want: "000"},
		{name: "/abs/dir/char_v010.ma", want: "010"},
		{name: "x_v001_v002.ma", want: "002"},
		{name: "x_v001.v002.ma", want: "001"},
	}

	for _, tc := range cases {
		got, ok := files.ParseVersion(tc.name)
		if !ok {
			t.Fatalf("ParseVersion(%q): not found, want %q", tc.name, tc.want)
		}

		if got != tc.want {
			t.Fatalf("ParseVersion(%q)=%q, want %q", tc.name, got, tc.want)
		}
	}
}

func Test_ParseVersion_Returns_NotFound_When_Digit_Run_Is_Not_Exact_Width(t *testing.T) {
	t.Parallel()

	files := version.Files()

	for _, name := range []string{
		"shot_v01.ma",
		"shot_v1234.ma",
		"shot_v1.ma",
		"shot_001.ma",
		"shot_v001",
		"shot_v00a.ma",
		"shot_V001.ma",
		"",
	} {
		if got, ok := files.ParseVersion(name); ok {
			t.Fatalf("ParseVersion(%q)=%q, want not found", name, got)
		}
	}
}

func Test_ParseVersion_Requires_Token_At_End_When_Kind_Is_Folder(t *testing.T) {
	t.Parallel()

	folders := version.Folders()

	if got, ok := folders.ParseVersion("v003"); !ok || got != "003" {
		t.Fatalf("ParseVersion(v003)=(%q,%v), want (003,true)", got, ok)
	}

	if got, ok := folders.ParseVersion("layout_v012"); !ok || got != "012" {
		t.Fatalf("ParseVersion(layout_v012)=(%q,%v), want (012,true)", got, ok)
	}

	for _, name := range []string{"v003.ma", "v0031", "v03", "v003_old"} {
		if got, ok := folders.ParseVersion(name); ok {
			t.Fatalf("ParseVersion(%q)=%q, want not found", name, got)
		}
	}
}

func Test_ParseVersion_Uses_Scheme_Width_When_Width_Is_Not_Default(t *testing.T) {
	t.Parallel()

	files := version.Files()
	files.Width = 4

	if got, ok := files.ParseVersion("shot_v0012.ma"); !ok || got != "0012" {
		t.Fatalf("ParseVersion(shot_v0012.ma)=(%q,%v), want (0012,true)", got, ok)
	}

	if got, ok := files.ParseVersion("shot_v012.ma"); ok {
		t.Fatalf("ParseVersion(shot_v012.ma)=%q, want not found", got)
	}
}

func Test_Increment_Returns_ErrVersionOverflow_When_Token_Is_Largest(t *testing.T) {
	t.Parallel()

	files := version.Files()

	got, err := files.Increment("998")
	if err != nil || got != "999" {
		t.Fatalf("Increment(998)=(%q,%v), want (999,nil)", got, err)
	}

	_, err = files.Increment("999")
	if !errors.Is(err, version.ErrVersionOverflow) {
		t.Fatalf("Increment(999): err=%v, want %v", err, version.ErrVersionOverflow)
	}

	_, err = files.Format(1000)
	if !errors.Is(err, version.ErrVersionOverflow) {
		t.Fatalf("Format(1000): err=%v, want %v", err, version.ErrVersionOverflow)
	}
}

func Test_Increment_Returns_ErrVersionOverflow_When_Token_Is_Wider_Than_Scheme(t *testing.T) {
	t.Parallel()

	_, err := version.Files().Increment("18446744073709551615")
	if !errors.Is(err, version.ErrVersionOverflow) {
		t.Fatalf("Increment(maxuint64): err=%v, want %v", err, version.ErrVersionOverflow)
	}
}

func Test_Token_Value_Returns_ErrMalformedToken_When_Not_Digits(t *testing.T) {
	t.Parallel()

	for _, tok := range []version.Token{"", "-01", "+01", "0x1", "1_0", "abc", "00 1"} {
		if _, err := tok.Value(); !errors.Is(err, version.ErrMalformedToken) {
			t.Fatalf("Token(%q).Value(): err=%v, want %v", tok, err, version.ErrMalformedToken)
		}
	}

	n, err := version.Token("007").Value()
	if err != nil || n != 7 {
		t.Fatalf("Token(007).Value()=(%d,%v), want (7,nil)", n, err)
	}
}

func Test_ParseToken_Returns_ErrMalformedToken_When_Width_Differs(t *testing.T) {
	t.Parallel()

	files := version.Files()

	if _, err := files.ParseToken("07"); !errors.Is(err, version.ErrMalformedToken) {
		t.Fatalf("ParseToken(07): err=%v, want %v", err, version.ErrMalformedToken)
	}

	if tok, err := files.ParseToken("070"); err != nil || tok != "070" {
		t.Fatalf("ParseToken(070)=(%q,%v), want (070,nil)", tok, err)
	}
}

func Test_Zero_Is_All_Zero_Digits_Of_Scheme_Width(t *testing.T) {
	t.Parallel()

	files := version.Files()
	if got := files.Zero(); got != "000" {
		t.Fatalf("Zero()=%q, want 000", got)
	}

	files.Width = 5
	if got := files.Zero(); got != "00000" {
		t.Fatalf("Zero() width 5=%q, want 00000", got)
	}
}

func Test_Increment_Round_Trips_Through_ParseVersion_For_Every_Width_3_Token(t *testing.T) {
	t.Parallel()

	files := version.Files()
	folders := version.Folders()

	tok := files.Zero()
	for range 998 {
		next, err := files.Increment(tok)
		if err != nil {
			t.Fatalf("Increment(%q): %v", tok, err)
		}

		fileName := fmt.Sprintf("asset_v%s.ma", next)
		if got, ok := files.ParseVersion(fileName); !ok || got != next {
			t.Fatalf("ParseVersion(%q)=(%q,%v), want (%q,true)", fileName, got, ok, next)
		}

		folderName := "v" + string(next)
		if got, ok := folders.ParseVersion(folderName); !ok || got != next {
			t.Fatalf("ParseVersion(%q)=(%q,%v), want (%q,true)", folderName, got, ok, next)
		}

		tok = next
	}
}

func Test_Rename_Replaces_Only_The_Parsed_Token(t *testing.T) {
	t.Parallel()

	files := version.Files()

	cases := []struct {
		name string
		tok  version.Token
		want string
	}{
		{name: "foo_v001.ma", tok: "002", want: "foo_v002.ma"},
		{name: "v1_shot_v009.final.ma", tok: "010", want: "v1_shot_v010.final.ma"},
		{name: "x_v001.v001.ma", tok: "002", want: "x_v002.v001.ma"},
	}

	for _, tc := range cases {
		got, ok := files.Rename(tc.name, tc.tok)
		if !ok || got != tc.want {
			t.Fatalf("Rename(%q,%q)=(%q,%v), want (%q,true)", tc.name, tc.tok, got, ok, tc.want)
		}
	}

	if _, ok := files.Rename("no_token.ma", "002"); ok {
		t.Fatalf("Rename(no_token.ma): ok=true, want false")
	}
}

func Test_Validate_Rejects_Unusable_Schemes(t *testing.T) {
	t.Parallel()

	cases := []version.Scheme{
		{},
		{Kind: version.KindFile, Width: 0},
		{Kind: version.KindFolder, Width: version.MaxWidth + 1},
		{Kind: version.Kind(9), Width: 3},
	}

	for _, s := range cases {
		if err := s.Validate(); !errors.Is(err, version.ErrInvalidScheme) {
			t.Fatalf("Validate(%+v): err=%v, want %v", s, err, version.ErrInvalidScheme)
		}
	}
}

func Test_ParseKind_Accepts_Singular_And_Plural(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]version.Kind{
		"file": version.KindFile, "Files": version.KindFile,
		"folder": version.KindFolder, "dirs": version.KindFolder,
	} {
		got, err := version.ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q)=(%v,%v), want (%v,nil)", in, got, err, want)
		}
	}

	if _, err := version.ParseKind("blob"); !errors.Is(err, version.ErrInvalidScheme) {
		t.Fatalf("ParseKind(blob): err=%v, want %v", err, version.ErrInvalidScheme)
	}
}
