package datasource

import (
	"fmt"
	"github.com/pkg/errors"
	"io"
)

// ReadAll 读取数据源中的全部记录，所有记录的特征维度必须一致
func ReadAll(source RecordSource) ([]*Record, error) {
	result := make([]*Record, 0, 16)
	var r *Record
	var err error
	for r, err = source.Load(); err == nil; r, err = source.Load() {
		if len(result) > 0 && len(r.Features) != len(result[0].Features) {
			return nil, fmt.Errorf("第%d条记录%s的特征维度为%d，与第一条记录的%d不一致",
				len(result)+1, r.Name, len(r.Features), len(result[0].Features))
		}
		result = append(result, r)
	}

	if err != io.EOF {
		return nil, errors.Wrap(err, "读取特征记录出现问题")
	}

	return result, nil
}

// Split 将记录拆分为名称与特征两个列表
func Split(records []*Record) ([]string, [][]float32) {
	names := make([]string, len(records))
	features := make([][]float32, len(records))
	for i, r := range records {
		names[i] = r.Name
		features[i] = r.Features
	}
	return names, features
}
