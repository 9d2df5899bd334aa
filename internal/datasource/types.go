package datasource

type RecordSource interface {
	// 读取一条特征记录。若读取完毕，则error设置为io.EOF。error为其他时表示读取出错
	Load() (*Record, error)
}

type Record struct {
	Name     string
	Features []float32
}
