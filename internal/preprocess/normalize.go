package preprocess

import (
	"github.com/packagewjx/feature-clusterer/internal/datasource"
	"github.com/packagewjx/feature-clusterer/internal/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"io"
	"math"
)

// Normalize 将每一列除以该列的最大绝对值，使特征落在[-1, 1]中。全为0的列保持不变。
func Normalize() Preprocessor {
	return &normalize{}
}

type normalize struct {
}

func (n normalize) Preprocess(data [][]float32) {
	if len(data) == 0 {
		return
	}

	columns := 0
	for _, row := range data {
		columns = max(columns, len(row))
	}
	maxAbs := make([]float64, columns)
	for _, row := range data {
		for i, f := range row {
			if v := math.Abs(float64(f)); v > maxAbs[i] {
				maxAbs[i] = v
			}
		}
	}

	for _, row := range data {
		for i := range row {
			if maxAbs[i] == 0 {
				continue
			}
			row[i] = float32(float64(row[i]) / maxAbs[i])
		}
	}
}

// PreprocessFile 读取csv特征文件，处理后按名称、特征的格式写出
func PreprocessFile(in io.Reader, out io.Writer, nameColumn int, precision int, processor Preprocessor, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("正在读取数据")
	records, err := datasource.ReadAll(datasource.NewCsvRecordSource(in, nameColumn, nil, datasource.WithLogger(logger)))
	if err != nil {
		return errors.Wrap(err, "读取数据失败")
	}

	names, features := datasource.Split(records)
	logger.Info("读取完毕，正在处理数据", zap.Int("records", len(records)))
	processor.Preprocess(features)

	logger.Info("处理完毕，正在写出数据")
	return utils.WriteRecords(out, names, features, precision)
}
