package file

type (
	File struct {
		BackendFileID string  `json:"backend_file_id"`
		DBID          int64   `json:"db_id"`
		ResultCode    string  `json:"result_code"`
		FileName      string  `json:"file_name"`
		Ext           string  `json:"ext"`
		IP            string  `json:"ip"`
		Deleted       bool    `json:"deleted"`
		UploaderID    int64   `json:"uploader_id"`
		FileSize      float64 `json:"file_size"`
		Timestamp     string  `json:"timestamp"`
		ContentType   string  `json:"content_type"`
		URL           string  `json:"url,omitempty"`
	}
	Files []File
)
