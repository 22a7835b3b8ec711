package postgres

import (
	"fmt"
	"strings"

	"github.com/oksasatya/alumni-network/internal/domain/repository"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so user text matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildDirectoryQuery renders the single-round-trip directory query for a
// filter. The total count rides along as a window function so results and
// count come back together. Approved-only is baked into the projection, not
// supplied by callers.
func buildDirectoryQuery(f repository.DirectoryFilter) (string, []any) {
	var (
		conds = []string{"onboarded = TRUE", "moderation_status = 'approved'"}
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Query != "" {
		p := arg("%" + escapeLike(f.Query) + "%")
		conds = append(conds, fmt.Sprintf(
			"(name ILIKE %[1]s OR company ILIKE %[1]s OR role ILIKE %[1]s OR location ILIKE %[1]s)", p))
	}
	if f.Degree != "" {
		conds = append(conds, "degree = "+arg(f.Degree))
	}
	if f.Branch != "" {
		conds = append(conds, "branch = "+arg(f.Branch))
	}
	if f.GraduationYear != 0 {
		conds = append(conds, "graduation_year = "+arg(f.GraduationYear))
	}

	q := `
		SELECT user_id, name, phone, degree, branch, graduation_year,
		       company, role, location, link, avatar_url,
		       count(*) OVER() AS total
		FROM profiles
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY graduation_year DESC
		LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)

	return q, args
}
