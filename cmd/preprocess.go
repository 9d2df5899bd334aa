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
	"github.com/packagewjx/feature-clusterer/internal/preprocess"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"os"
)

var preprocessNameColumn int
var preprocessPrecision int

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess infile outfile",
	Short: "对特征文件插值与归一化",
	Long: "读取csv格式的特征文件，对缺失或无法解析的特征按行线性插值，再按列除以最大绝对值归一化。\n" +
		"输出文件每行为：名称,特征...",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("参数错误")
		} else if args[0] == args[1] {
			return fmt.Errorf("infile与outfile不能一致")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "打开输入文件失败")
		}
		defer func() {
			_ = in.Close()
		}()

		return writeFile(args[1], func(out *os.File) error {
			return preprocess.PreprocessFile(in, out, preprocessNameColumn, preprocessPrecision,
				preprocess.Default(), logger)
		})
	},
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	preprocessCmd.Flags().IntVar(&preprocessNameColumn, NameColumnFlag, 0,
		"名称所在的列号，从0开始计算。小于0时使用行号作为名称")
	preprocessCmd.Flags().IntVarP(&preprocessPrecision, OutputPrecisionFlag, "p", DefaultOutputPrecision,
		"输出文件数据精度，默认为2")
}
