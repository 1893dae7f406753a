package lexicon

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EvaluationSample 一条带人工标注的JD样本，用于偏见检测的自评
type EvaluationSample struct {
	Text   string `yaml:"text"`
	Biased bool   `yaml:"biased"`
}

// EvaluationSet 偏见检测自评用的标注样本集
// 与词库一样是只读数据，随整套快照原子替换
type EvaluationSet struct {
	Version string
	Samples []EvaluationSample
}

// evaluationFile 标注样本文件的YAML结构
type evaluationFile struct {
	Version string             `yaml:"version"`
	Samples []EvaluationSample `yaml:"samples"`
}

// ParseEvaluationSet 从YAML数据解析标注样本集
func ParseEvaluationSet(data []byte) (*EvaluationSet, error) {
	var file evaluationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation samples: %w", err)
	}

	set := &EvaluationSet{Version: file.Version}
	for i, sample := range file.Samples {
		if sample.Text == "" {
			return nil, fmt.Errorf("evaluation sample %d has empty text", i)
		}
		set.Samples = append(set.Samples, sample)
	}
	return set, nil
}
