package datasource

import (
	"encoding/csv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"io"
	"math"
	"strconv"
)

type CsvOption func(c *csvRecordSource)

func WithLogger(logger *zap.Logger) CsvOption {
	return func(c *csvRecordSource) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCsvRecordSource 创建读取csv特征文件的数据源。nameColumn为名称所在的列，小于0时以行号作为名称；
// removeColumn中的列不作为特征。无法解析的数据记为NaN，留待插值处理。
func NewCsvRecordSource(reader io.Reader, nameColumn int, removeColumn []int, opts ...CsvOption) RecordSource {
	removeSet := make(map[int]struct{})
	for _, rc := range removeColumn {
		removeSet[rc] = struct{}{}
	}
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	c := &csvRecordSource{
		reader:     csvReader,
		nameColumn: nameColumn,
		removeSet:  removeSet,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type csvRecordSource struct {
	reader     *csv.Reader
	nameColumn int
	removeSet  map[int]struct{}
	recordRead int
	logger     *zap.Logger
}

func (c *csvRecordSource) Load() (*Record, error) {
	record, err := c.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, errors.Wrap(err, "读取csv文件出错")
	}
	c.recordRead++

	r := &Record{
		Name:     strconv.Itoa(c.recordRead - 1),
		Features: make([]float32, 0, len(record)),
	}
	if c.nameColumn >= 0 {
		if c.nameColumn >= len(record) {
			return nil, errors.Errorf("第%d行只有%d列，没有名称列%d", c.recordRead, len(record), c.nameColumn)
		}
		r.Name = record[c.nameColumn]
	}

	for i := 0; i < len(record); i++ {
		if _, ok := c.removeSet[i]; ok || i == c.nameColumn {
			continue
		}

		f, err := strconv.ParseFloat(record[i], 32)
		if err != nil || math.IsNaN(f) {
			c.logger.Warn("数据有误，记为NaN",
				zap.Int("line", c.recordRead), zap.Int("column", i), zap.String("value", record[i]))
			f = math.NaN()
		}
		r.Features = append(r.Features, float32(f))
	}

	return r, nil
}
