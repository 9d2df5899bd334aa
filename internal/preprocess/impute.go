package preprocess

import (
	"math"
	"sync"
)

// Impute 对每行中连续的NaN做线性插值。开头的NaN从0开始插值，结尾的NaN插值到0，整行都是NaN时保持不变。
func Impute() Preprocessor {
	return &imputePreProcessor{}
}

type imputePreProcessor struct {
}

func (i imputePreProcessor) Preprocess(data [][]float32) {
	wg := sync.WaitGroup{}
	for _, row := range data {
		wg.Add(1)
		go func(row []float32) {
			defer wg.Done()
			imputeRow(row)
		}(row)
	}
	wg.Wait()
}

func imputeRow(row []float32) {
	invalidLeft := -1
	for si := 0; si < len(row); si++ {
		f := float64(row[si])
		if math.IsNaN(f) {
			if invalidLeft == -1 {
				invalidLeft = si
			}
		} else if invalidLeft != -1 {
			startVal := 0.0
			if invalidLeft != 0 {
				startVal = float64(row[invalidLeft-1])
			}

			// 线性填充
			k := (f - startVal) / float64(si-invalidLeft+1)
			for i := invalidLeft; i < si; i++ {
				row[i] = float32(startVal + k*float64(i-(invalidLeft-1)))
			}

			invalidLeft = -1
		}
	}

	// 结尾的NaN插值到0；invalidLeft为0时整行都是NaN，无法插值
	if invalidLeft > 0 {
		startVal := float64(row[invalidLeft-1])
		k := (-startVal) / float64(len(row)-invalidLeft+1)
		for i := invalidLeft; i < len(row); i++ {
			row[i] = float32(startVal + k*float64(i-(invalidLeft-1)))
		}
	}
}
