package postgres

import (
	"strings"
	"testing"

	"github.com/oksasatya/alumni-network/internal/domain/repository"
)

func TestBuildDirectoryQueryBase(t *testing.T) {
	q, args := buildDirectoryQuery(repository.DirectoryFilter{Limit: 20, Offset: 0})

	if !strings.Contains(q, "onboarded = TRUE") || !strings.Contains(q, "moderation_status = 'approved'") {
		t.Fatalf("visibility conditions missing:\n%s", q)
	}
	if !strings.Contains(q, "count(*) OVER() AS total") {
		t.Fatalf("window count missing:\n%s", q)
	}
	if !strings.Contains(q, "ORDER BY graduation_year DESC") {
		t.Fatalf("sort order missing:\n%s", q)
	}
	if len(args) != 2 {
		t.Fatalf("args = %v, want limit and offset only", args)
	}
	if args[0] != 20 || args[1] != 0 {
		t.Fatalf("limit/offset args = %v", args)
	}
}

func TestBuildDirectoryQueryFreeText(t *testing.T) {
	q, args := buildDirectoryQuery(repository.DirectoryFilter{Query: "acme", Limit: 20})

	if strings.Count(q, "ILIKE $1") != 4 {
		t.Fatalf("free text should reuse one placeholder across all four columns:\n%s", q)
	}
	for _, col := range []string{"name ILIKE", "company ILIKE", "role ILIKE", "location ILIKE"} {
		if !strings.Contains(q, col) {
			t.Errorf("missing %q in:\n%s", col, q)
		}
	}
	if args[0] != "%acme%" {
		t.Fatalf("pattern arg = %v", args[0])
	}
}

func TestBuildDirectoryQueryEscapesLikeMetacharacters(t *testing.T) {
	_, args := buildDirectoryQuery(repository.DirectoryFilter{Query: `100%_back\slash`, Limit: 20})

	// "100%" must match the literal text, not act as a wildcard.
	if args[0] != `%100\%\_back\\slash%` {
		t.Fatalf("pattern arg = %v", args[0])
	}
}

func TestBuildDirectoryQueryAllFilters(t *testing.T) {
	f := repository.DirectoryFilter{
		Query:          "jane",
		Degree:         "B.Tech",
		Branch:         "Computer Science",
		GraduationYear: 2019,
		Limit:          20,
		Offset:         40,
	}
	q, args := buildDirectoryQuery(f)

	if !strings.Contains(q, "degree = $2") {
		t.Fatalf("degree placeholder wrong:\n%s", q)
	}
	if !strings.Contains(q, "branch = $3") {
		t.Fatalf("branch placeholder wrong:\n%s", q)
	}
	if !strings.Contains(q, "graduation_year = $4") {
		t.Fatalf("year placeholder wrong:\n%s", q)
	}
	if !strings.Contains(q, "LIMIT $5") || !strings.Contains(q, "OFFSET $6") {
		t.Fatalf("limit/offset placeholders wrong:\n%s", q)
	}
	want := []any{"%jane%", "B.Tech", "Computer Science", 2019, 20, 40}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], want[i])
		}
	}
}

func TestBuildDirectoryQuerySkipsEmptyFilters(t *testing.T) {
	q, _ := buildDirectoryQuery(repository.DirectoryFilter{Degree: "MBA", Limit: 20})

	if strings.Contains(q, "branch =") || strings.Contains(q, "graduation_year =") || strings.Contains(q, "ILIKE") {
		t.Fatalf("unset filters leaked into query:\n%s", q)
	}
	if !strings.Contains(q, "degree = $1") {
		t.Fatalf("degree condition missing:\n%s", q)
	}
}
