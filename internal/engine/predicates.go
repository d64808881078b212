package engine

import (
	"math"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dlclark/regexp2"
	"golang.org/x/net/idna"
)

// Patterns use ECMAScript semantics so schema authors get the regex dialect
// the schemas were written for.
const regexOptions = regexp2.ECMAScript

var (
	emailPattern = regexp2.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`, regexOptions)
	datePattern  = regexp2.MustCompile(`^\d{4}-\d{2}-\d{2}$`, regexOptions)

	hostProfile = idna.New(idna.MapForLookup(), idna.StrictDomainName(false))
)

// CompilePattern compiles a pattern keyword the way the validator does.
func CompilePattern(src string) (*regexp2.Regexp, error) {
	return regexp2.Compile(src, regexOptions)
}

// matchRegexp reports an unanchored match. Engine errors (timeouts) count as
// no match.
func matchRegexp(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// MatchesType is the type predicate. null only satisfies "null"; unknown type
// names accept every non-null value.
func MatchesType(v any, typ string) bool {
	k := kindOf(v)
	if k == kindNull {
		return typ == "null"
	}
	switch typ {
	case "string":
		return k == kindString
	case "number":
		f, ok := toNumber(v)
		return ok && !math.IsNaN(f)
	case "integer":
		f, ok := toNumber(v)
		return ok && !math.IsInf(f, 0) && !math.IsNaN(f) && math.Trunc(f) == f
	case "boolean":
		return k == kindBool
	case "array":
		return k == kindArray
	case "object":
		return k == kindObject
	case "null":
		return false
	default:
		return true
	}
}

// MatchesFormat is the format predicate for string values. Unknown formats
// accept every value.
func MatchesFormat(v any, format string) bool {
	s := toString(v)
	switch format {
	case "email":
		return matchRegexp(emailPattern, s)
	case "date-time":
		return isDateTime(s)
	case "date":
		return matchRegexp(datePattern, s) && isCalendarDate(s)
	case "uri":
		return isAbsoluteURI(s)
	default:
		return true
	}
}

// isDateTime accepts anything a lenient date parser understands, not only
// RFC 3339.
func isDateTime(s string) bool {
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return true
	}
	_, err := dateparse.ParseAny(s)
	return err == nil
}

func isCalendarDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// specialSchemes need an authority with a valid host.
var specialSchemes = map[string]bool{
	"http": true, "https": true, "ws": true, "wss": true, "ftp": true,
}

// forbiddenHost lists code points a domain host may not contain.
const forbiddenHost = " #%/:<>?@[\\]^|"

var stripTabNewline = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// isAbsoluteURI follows URL-standard parsing where it differs from
// url.Parse: surrounding C0 controls and spaces are trimmed, tabs and
// newlines removed, stray percent signs kept, and special schemes take a
// host even without "//".
func isAbsoluteURI(s string) bool {
	s = strings.TrimFunc(s, func(r rune) bool { return r <= 0x20 })
	s = escapeStrayPercents(stripTabNewline.Replace(s))
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if !specialSchemes[scheme] {
		return true
	}
	rest := strings.TrimLeft(s[len(u.Scheme)+1:], `/\`)
	if u, err = url.Parse(scheme + "://" + rest); err != nil {
		return false
	}
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err != nil || n > 65535 {
			return false
		}
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	if net.ParseIP(host) != nil {
		return true
	}
	if strings.ContainsAny(host, forbiddenHost) {
		return false
	}
	_, err = hostProfile.ToASCII(host)
	return err == nil
}

// escapeStrayPercents rewrites a '%' not followed by two hex digits as %25.
func escapeStrayPercents(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
