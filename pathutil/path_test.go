package pathutil

import "testing"

func TestToPosix(t *testing.T) {
	if got := ToPosix("a/b/c.txt"); got != "a/b/c.txt" {
		t.Fatalf("ToPosix unexpected: %q", got)
	}
}

func TestSuffix(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":    "jpg",
		"archive.tar":  "tar",
		"noext":        "",
		"a/b/c.PNG":    "png",
		"dotfile.":     "",
	}
	for in, want := range cases {
		if got := Suffix(in); got != want {
			t.Errorf("Suffix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSamePathOS(t *testing.T) {
	if !samePathOS("A/photo.JPG", "A/photo.JPG", "linux") {
		t.Fatal("identical paths must match on posix")
	}
	if samePathOS("A/photo.JPG", "a/photo.jpg", "linux") {
		t.Fatal("posix comparison must be case-sensitive")
	}
	if !samePathOS("A/photo.JPG", "a/photo.jpg", "windows") {
		t.Fatal("windows comparison must be case-insensitive")
	}
}
