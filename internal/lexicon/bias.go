package lexicon

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// TermMatcher 单个词条的整词匹配器
// 只做大小写不敏感的精确表面形式匹配，不做词干还原，保证行为确定可审计
type TermMatcher struct {
	Canonical string // 词库声明的规范写法，命中后按此形式上报
	re        *regexp.Regexp
}

// newTermMatcher 编译一个整词/整词组匹配器
// 词条必须以字母或数字开头结尾，否则\b边界语义不成立
func newTermMatcher(term string) (*TermMatcher, error) {
	if term == "" {
		return nil, fmt.Errorf("empty lexicon term")
	}
	if !isWordChar(term[0]) || !isWordChar(term[len(term)-1]) {
		return nil, fmt.Errorf("lexicon term %q must start and end with a letter or digit", term)
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return nil, fmt.Errorf("failed to compile matcher for term %q: %w", term, err)
	}
	return &TermMatcher{Canonical: term, re: re}, nil
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// MatchString 文本中是否出现该词条
func (m *TermMatcher) MatchString(text string) bool {
	return m.re.MatchString(text)
}

// FindAllIndex 返回该词条在文本中的全部[start,end)偏移
func (m *TermMatcher) FindAllIndex(text string) [][]int {
	return m.re.FindAllStringIndex(text, -1)
}

// BiasCategory 一个偏见类别及其词条，顺序即词库声明顺序
// Neutral是该类别的中性替代措辞，用于命中后生成改写建议
type BiasCategory struct {
	Name    string
	Terms   []*TermMatcher
	Neutral []string
}

// BiasLexicon 偏见类别→词条列表的只读词库
// 类别是开放的数据值，不做硬编码分支
type BiasLexicon struct {
	Version    string
	Categories []BiasCategory
}

// biasFile 偏见词库文件的YAML结构
type biasFile struct {
	Version    string `yaml:"version"`
	Categories []struct {
		Category string   `yaml:"category"`
		Terms    []string `yaml:"terms"`
		Neutral  []string `yaml:"neutral"`
	} `yaml:"categories"`
}

// ParseBiasLexicon 从YAML数据解析偏见词库
func ParseBiasLexicon(data []byte) (*BiasLexicon, error) {
	var file biasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bias lexicon: %w", err)
	}

	lex := &BiasLexicon{Version: file.Version}
	seen := make(map[string]bool, len(file.Categories))
	for _, c := range file.Categories {
		if c.Category == "" {
			return nil, fmt.Errorf("bias lexicon category with empty name")
		}
		if seen[c.Category] {
			return nil, fmt.Errorf("duplicate bias lexicon category: %s", c.Category)
		}
		seen[c.Category] = true

		cat := BiasCategory{Name: c.Category, Neutral: c.Neutral}
		for _, term := range c.Terms {
			m, err := newTermMatcher(term)
			if err != nil {
				return nil, fmt.Errorf("bias category %s: %w", c.Category, err)
			}
			cat.Terms = append(cat.Terms, m)
		}
		lex.Categories = append(lex.Categories, cat)
	}
	return lex, nil
}

// DemographicLexicon 身份特征词库：简历中自我披露的受保护属性词条
// 结构与偏见词库相近但语义不同：前者标记JD用语偏见，这里驱动简历脱敏
type DemographicLexicon struct {
	Version string
	Terms   []*TermMatcher
}

// demographicFile 身份特征词库文件的YAML结构
type demographicFile struct {
	Version string   `yaml:"version"`
	Terms   []string `yaml:"terms"`
}

// ParseDemographicLexicon 从YAML数据解析身份特征词库
func ParseDemographicLexicon(data []byte) (*DemographicLexicon, error) {
	var file demographicFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse demographic lexicon: %w", err)
	}

	lex := &DemographicLexicon{Version: file.Version}
	for _, term := range file.Terms {
		m, err := newTermMatcher(term)
		if err != nil {
			return nil, fmt.Errorf("demographic lexicon: %w", err)
		}
		lex.Terms = append(lex.Terms, m)
	}
	return lex, nil
}
