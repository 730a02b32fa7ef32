package link

type (
	Link struct {
		Dest       string `json:"dest"`
		IP         string `json:"ip"`
		Deleted    bool   `json:"deleted"`
		ExternalID string `json:"external_id"`
		DBID       int64  `json:"db_id"`
		UploaderID int64  `json:"uploader_id"`
		Timestamp  string `json:"timestamp"`
	}
	Links []Link
)
