/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"github.com/packagewjx/feature-clusterer/internal/classify"
	"github.com/packagewjx/feature-clusterer/internal/datasource"
	"github.com/packagewjx/feature-clusterer/internal/preprocess"
	"github.com/packagewjx/feature-clusterer/internal/utils"
	"github.com/packagewjx/feature-clusterer/pkg/clusterer"
	"github.com/packagewjx/feature-clusterer/pkg/core"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"math"
	"os"
)

// Global Flags
const (
	AlgorithmFlag       = "algorithm"
	MeasureFlag         = "measure"
	NameColumnFlag      = "nameColumn"
	RemoveColumnFlag    = "removeColumn"
	OutputPrecisionFlag = "outputPrecision"
	PreprocessFlag      = "preprocess"
	CenterFileFlag      = "centerFile"
	SeedFlag            = "seed"
)

// Global Defaults
const (
	DefaultOutputPrecision = 2
)

// Flags for algorithms
const (
	NumClassFlag     = "class"
	ThresholdFlag    = "threshold"
	RefreshRatioFlag = "refreshRatio"
	RoundFlag        = "round"
)

var (
	algorithm       string
	measureName     string
	nameColumn      int
	removeColumn    []int
	outputPrecision int
	doPreprocess    bool
	centerFile      string
	seed            int64
	numClass        int
	threshold       float64
	refreshRatio    float64
	round           int
)

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster dataFile outputFile",
	Short: "读取数据文件聚类计算，并输出结果到新文件中",
	Long: "读取csv格式的特征文件，每行为一个元素。输出文件每行为：名称,类别,特征...，类别按类大小降序编号。\n" +
		"默认使用自动算法，无需指定类数量；kmeans、spectral与kmeanspp需要通过class指定类数量。",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		} else if args[0] == args[1] {
			return fmt.Errorf("dataFile与outputFile不能一致")
		} else if centerFile != "" && (centerFile == args[0] || centerFile == args[1]) {
			return fmt.Errorf("centerFile不能与dataFile或outputFile一致")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		measure, err := core.MeasureByName(measureName)
		if err != nil {
			return err
		}
		c, err := clusterer.New[int](clusterer.Config{
			Algorithm:    clusterer.Algorithm(algorithm),
			K:            numClass,
			Threshold:    threshold,
			Measure:      measure,
			RefreshRatio: refreshRatio,
			Rounds:       round,
			Seed:         seed,
			Logger:       logger,
		})
		if err != nil {
			return err
		}

		names, features, err := readFeatures(args[0])
		if err != nil {
			return err
		}

		logger.Info("开始聚类", zap.String("algorithm", algorithm), zap.Int("records", len(names)))
		indices := make([]int, len(features))
		for i := range indices {
			indices[i] = i
		}
		clusters, err := c.Cluster(indices, func(i int) []float32 {
			return features[i]
		})
		if err != nil {
			return errors.Wrap(err, "聚类出错")
		}
		logger.Info("聚类完成", zap.Int("clusters", len(clusters)))

		labels := make([]int, len(features))
		centroids := make([][]float32, len(clusters))
		for label, cluster := range clusters {
			points := make([]core.Point, 0, len(cluster))
			for i, coordinates := range cluster {
				labels[i] = label
				points = append(points, core.NewPoint(i, coordinates))
			}
			centroids[label] = core.Mean(points).Coordinates
		}

		if err = writeFile(args[1], func(out *os.File) error {
			return utils.WriteAssignments(out, names, labels, features, outputPrecision)
		}); err != nil {
			return err
		}
		if centerFile != "" {
			if err = writeFile(centerFile, func(out *os.File) error {
				return utils.WriteCentroids(out, centroids, outputPrecision)
			}); err != nil {
				return err
			}
		}

		logger.Info("输出完成", zap.String("output", args[1]))
		return nil
	},
}

func readFeatures(file string) ([]string, [][]float32, error) {
	in, err := os.Open(file)
	if err != nil {
		return nil, nil, errors.Wrap(err, "打开数据文件失败")
	}
	defer func() {
		_ = in.Close()
	}()

	logger.Info("读取数据中", zap.String("file", file))
	records, err := datasource.ReadAll(datasource.NewCsvRecordSource(in, nameColumn, removeColumn,
		datasource.WithLogger(logger)))
	if err != nil {
		return nil, nil, errors.Wrap(err, "读取错误")
	}
	names, features := datasource.Split(records)
	logger.Info("读取数据完成", zap.Int("records", len(records)))

	if doPreprocess {
		preprocess.Default().Preprocess(features)
		return names, features, nil
	}
	for i, row := range features {
		for j, f := range row {
			if math.IsNaN(float64(f)) {
				return nil, nil, fmt.Errorf("第%d行第%d个特征缺失，可使用--%s插值", i, j, PreprocessFlag)
			}
		}
	}
	return names, features, nil
}

func writeFile(file string, write func(out *os.File) error) error {
	out, err := os.Create(file)
	if err != nil {
		return errors.Wrap(err, "创建输出文件失败")
	}
	if err = write(out); err != nil {
		_ = out.Close()
		return errors.Wrap(err, "输出文件错误")
	}
	return errors.Wrap(out.Close(), "关闭输出文件失败")
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.Flags().StringVarP(&algorithm, AlgorithmFlag, "a", string(clusterer.Automatic),
		fmt.Sprintf("指定使用的算法，可选值：%v", classify.AlgorithmTypes()))
	clusterCmd.Flags().StringVarP(&measureName, MeasureFlag, "m", "squared-euclidean",
		"距离度量，可选值：squared-euclidean、euclidean、manhattan")
	clusterCmd.Flags().IntVar(&nameColumn, NameColumnFlag, 0,
		"名称所在的列号，从0开始计算。小于0时使用行号作为名称")
	clusterCmd.Flags().IntSliceVarP(&removeColumn, RemoveColumnFlag, "r", []int{},
		"需要移除的列号，从0开始计算。使用此字段忽略掉不是数字的列")
	clusterCmd.Flags().IntVarP(&outputPrecision, OutputPrecisionFlag, "p", DefaultOutputPrecision,
		"输出文件数据精度，默认为2")
	clusterCmd.Flags().BoolVar(&doPreprocess, PreprocessFlag, false,
		"聚类前对缺失值插值，并按列归一化")
	clusterCmd.Flags().StringVar(&centerFile, CenterFileFlag, "",
		"若不为空，则将各个类的中心输出到此文件")
	clusterCmd.Flags().Int64Var(&seed, SeedFlag, 0,
		"随机数种子，为0时使用当前时间")

	clusterCmd.Flags().IntVarP(&numClass, NumClassFlag, "k", 0,
		"类数量，kmeans、spectral与kmeanspp算法需要")
	clusterCmd.Flags().Float64VarP(&threshold, ThresholdFlag, "t", 0,
		"greedy算法的距离阈值，距离不超过阈值的点归入同一类")
	clusterCmd.Flags().Float64Var(&refreshRatio, RefreshRatioFlag, 0,
		"greedy算法新增成员超过类大小的此比例时刷新中心，为0时使用默认值")
	clusterCmd.Flags().IntVar(&round, RoundFlag, classify.KMeansPPDefaultRound,
		"kmeanspp算法执行的轮次")
}
