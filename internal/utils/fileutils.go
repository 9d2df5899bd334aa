package utils

import (
	"encoding/csv"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"strconv"
)

func FormatFeatures(features []float32, precision int) []string {
	record := make([]string, len(features))
	for i, f := range features {
		record[i] = strconv.FormatFloat(float64(f), 'f', precision, 32)
	}
	return record
}

// WriteAssignments 每行输出：名称,类别,特征...
func WriteAssignments(out io.Writer, names []string, labels []int, features [][]float32, precision int) error {
	if len(names) != len(labels) || len(names) != len(features) {
		return fmt.Errorf("名称、类别与特征数量不一致：%d, %d, %d", len(names), len(labels), len(features))
	}

	writer := csv.NewWriter(out)
	for i, name := range names {
		record := make([]string, 2, 2+len(features[i]))
		record[0] = name
		record[1] = strconv.Itoa(labels[i])
		record = append(record, FormatFeatures(features[i], precision)...)
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据出错", i))
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "写入数据错误")
}

// WriteCentroids 每行输出一个类的中心：类别,坐标...
func WriteCentroids(out io.Writer, centroids [][]float32, precision int) error {
	writer := csv.NewWriter(out)
	for i, centroid := range centroids {
		record := append([]string{strconv.Itoa(i)}, FormatFeatures(centroid, precision)...)
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d个中心出错", i))
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "写入数据错误")
}

// WriteRecords 每行输出：名称,特征...
func WriteRecords(out io.Writer, names []string, features [][]float32, precision int) error {
	if len(names) != len(features) {
		return fmt.Errorf("名称与特征数量不一致：%d, %d", len(names), len(features))
	}

	writer := csv.NewWriter(out)
	for i, name := range names {
		record := append([]string{name}, FormatFeatures(features[i], precision)...)
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, fmt.Sprintf("写入第%d条数据出错", i))
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "写入数据错误")
}
