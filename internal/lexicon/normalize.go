package lexicon

import "strings"

// isTokenRune 判断字符是否属于候选token
// 保留 + # . / 等技能名常见的内嵌符号（c++、c#、node.js、ci/cd）
func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '+' || r == '#' || r == '.' || r == '/':
		return true
	}
	return false
}

// trimToken 去掉token首尾的句读残留
// 尾部的 + 和 # 要保留（c++、c#），尾部的 . / 属于句读
func trimToken(tok string) string {
	tok = strings.TrimLeft(tok, ".+#/")
	tok = strings.TrimRight(tok, "./")
	return tok
}

// Tokenize 将文本切分为小写的规范化token序列
// 连字符视为分隔符，使"machine-learning"与"machine learning"归一到同一词组
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	tokens := make([]string, 0, len(lower)/5)

	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := trimToken(b.String())
		b.Reset()
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}

	for _, r := range lower {
		if isTokenRune(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// NormalizeTerm 将一个技能表面形式归一化为别名表的键
// 与Tokenize使用同一套规则，保证查表与扫描两侧一致
func NormalizeTerm(s string) string {
	return strings.Join(Tokenize(s), " ")
}
