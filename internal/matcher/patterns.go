package matcher

import "regexp"

// TeamNameClassVersion changes whenever TeamNameClass does.
const TeamNameClassVersion = 1

// TeamNameClass is the single allow-list for team-name captures: CJK
// ideographs, ASCII letters and digits, hyphen, the sponsor token
// "7ELEVEn", both ampersand forms, both period forms and whitespace.
// Anything else (pipes, brackets, markup leftovers) ends a capture.
const TeamNameClass = `(?:7ELEVEn|[\x{4e00}-\x{9fa5}A-Za-z0-9\-&＆.．\s])`

const (
	// dateToken matches 2025/04/01, 2025-4-1 and mixes of the two
	dateToken = `\d{4}[/\-]\d{1,2}[/\-]\d{1,2}`

	// leadGap bounds the noise allowed between the date and the first team
	leadGap = `.{0,80}?`

	// vsToken accepts VS, V.S., vs and the full-width ＶＳ
	vsToken = `[VvＶｖ][.．]?[SsＳｓ]`

	vsSeparator     = `\s*(?:\b[Vv]|[Ｖｖ])[.．]?[SsＳｓ][.．]*\s*`
	hyphenSeparator = `\s*-\s*`
)

var (
	// titlePatterns are tried in order against title text and full page text
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(` + dateToken + `)` + leadGap + `(` + TeamNameClass + `+?)` + vsSeparator + `(` + TeamNameClass + `+)`),
		regexp.MustCompile(`(` + dateToken + `)` + leadGap + `(` + TeamNameClass + `+?)` + hyphenSeparator + `(` + TeamNameClass + `+)`),
	}

	breadcrumbVS    = regexp.MustCompile(vsToken)
	breadcrumbHead  = regexp.MustCompile(`(?s)^(` + dateToken + `)\s+(.+)$`)
	breadcrumbSplit = regexp.MustCompile(`\s+[.．]*` + vsToken + `[.．]*\s+`)
)
