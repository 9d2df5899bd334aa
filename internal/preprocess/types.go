package preprocess

// Preprocessor 原地处理特征矩阵，每行是一个元素的特征
type Preprocessor interface {
	Preprocess(data [][]float32)
}

type defaultPreprocess struct {
	chain []Preprocessor
}

func (d *defaultPreprocess) Preprocess(data [][]float32) {
	for _, processor := range d.chain {
		processor.Preprocess(data)
	}
}

func Default() Preprocessor {
	return &defaultPreprocess{chain: []Preprocessor{Impute(), Normalize()}}
}
