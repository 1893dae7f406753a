package lexicon

import _ "embed"

// 内置词库数据，数据文件路径未配置时使用
// 内容来源于线上筛选流程沉淀的岗位与词条清单

//go:embed defaults/taxonomy.yaml
var defaultTaxonomyYAML []byte

//go:embed defaults/bias_lexicon.yaml
var defaultBiasLexiconYAML []byte

//go:embed defaults/demographic_lexicon.yaml
var defaultDemographicLexiconYAML []byte

//go:embed defaults/evaluation_samples.yaml
var defaultEvaluationSamplesYAML []byte
