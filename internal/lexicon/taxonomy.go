package lexicon

import (
	"fmt"
	"strings"

	"resume-screen-go/internal/types"

	"gopkg.in/yaml.v3"
)

// 多词技能至少要支持到三元词组
const minPhraseTokens = 3

// taxonomyFile 岗位技能数据文件的YAML结构
type taxonomyFile struct {
	Version string           `yaml:"version"`
	Roles   []*types.JobRole `yaml:"roles"`
	Aliases []aliasEntry     `yaml:"aliases"`
}

type aliasEntry struct {
	Surface   string `yaml:"surface"`
	Canonical string `yaml:"canonical"`
}

// Taxonomy 岗位→技能要求的只读映射，以及表面形式→规范技能名的别名表
// 进程启动时加载一次，跨请求无锁共享
type Taxonomy struct {
	Version string

	roles     map[string]*types.JobRole
	roleOrder []string

	aliases         map[string]string // 归一化表面形式 → 规范技能名
	maxPhraseTokens int
}

// ParseTaxonomy 从YAML数据解析岗位技能数据
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy data: %w", err)
	}

	t := &Taxonomy{
		Version: file.Version,
		roles:   make(map[string]*types.JobRole, len(file.Roles)),
		aliases: make(map[string]string),
	}

	for _, role := range file.Roles {
		if role.ID == "" {
			return nil, fmt.Errorf("taxonomy role with empty id")
		}
		if _, dup := t.roles[role.ID]; dup {
			return nil, fmt.Errorf("duplicate taxonomy role id: %s", role.ID)
		}
		seen := make(map[string]bool, len(role.RequiredSkills))
		for _, sw := range role.RequiredSkills {
			if sw.Name == "" {
				return nil, fmt.Errorf("role %s: skill with empty name", role.ID)
			}
			if sw.Weight <= 0 || sw.Weight > 1 {
				return nil, fmt.Errorf("role %s: skill %s weight %v out of (0,1]", role.ID, sw.Name, sw.Weight)
			}
			if seen[sw.Name] {
				return nil, fmt.Errorf("role %s: duplicate skill %s", role.ID, sw.Name)
			}
			seen[sw.Name] = true
			// 每个规范技能名都是自身的别名
			t.addAlias(sw.Name, sw.Name)
		}
		t.roles[role.ID] = role
		t.roleOrder = append(t.roleOrder, role.ID)
	}

	for _, a := range file.Aliases {
		if a.Surface == "" || a.Canonical == "" {
			return nil, fmt.Errorf("taxonomy alias with empty surface or canonical")
		}
		t.addAlias(a.Surface, a.Canonical)
		// 别名目标本身也要可被直接命中
		t.addAlias(a.Canonical, a.Canonical)
	}

	if t.maxPhraseTokens < minPhraseTokens {
		t.maxPhraseTokens = minPhraseTokens
	}
	return t, nil
}

// addAlias 记录一条归一化后的别名映射，多对一，后写不覆盖先写
func (t *Taxonomy) addAlias(surface, canonical string) {
	key := NormalizeTerm(surface)
	if key == "" {
		return
	}
	if _, exists := t.aliases[key]; !exists {
		t.aliases[key] = canonical
	}
	if n := len(strings.Split(key, " ")); n > t.maxPhraseTokens {
		t.maxPhraseTokens = n
	}
}

// Role 按ID查找岗位定义
func (t *Taxonomy) Role(id string) (*types.JobRole, bool) {
	role, ok := t.roles[id]
	return role, ok
}

// Roles 按声明顺序返回全部岗位
func (t *Taxonomy) Roles() []*types.JobRole {
	out := make([]*types.JobRole, 0, len(t.roleOrder))
	for _, id := range t.roleOrder {
		out = append(out, t.roles[id])
	}
	return out
}

// CanonicalSkill 查找一个归一化词组对应的规范技能名
func (t *Taxonomy) CanonicalSkill(normalizedPhrase string) (string, bool) {
	canonical, ok := t.aliases[normalizedPhrase]
	return canonical, ok
}

// MaxPhraseTokens 别名表中最长词组的token数（不小于3）
// 技能提取按这个上限生成n-gram候选
func (t *Taxonomy) MaxPhraseTokens() int {
	return t.maxPhraseTokens
}
