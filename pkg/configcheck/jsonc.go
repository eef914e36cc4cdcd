package configcheck

// StripComments removes // line comments and /* */ block comments from
// JSONC input so the remainder can be validated as plain JSON. Comment
// markers inside string literals are preserved. Newlines inside block
// comments are kept so syntax-error positions stay meaningful.
func StripComments(src []byte) []byte {
	out := make([]byte, 0, len(src))

	const (
		code = iota
		inString
		lineComment
		blockComment
	)
	state := code

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch state {
		case code:
			switch {
			case c == '"':
				state = inString
				out = append(out, c)
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = lineComment
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = blockComment
				i++
			default:
				out = append(out, c)
			}
		case inString:
			out = append(out, c)
			if c == '\\' && i+1 < len(src) {
				i++
				out = append(out, src[i])
			} else if c == '"' {
				state = code
			}
		case lineComment:
			if c == '\n' {
				state = code
				out = append(out, c)
			}
		case blockComment:
			if c == '\n' {
				out = append(out, c)
			} else if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = code
				i++
			}
		}
	}

	return out
}
