package transfer

import "time"

// GraphError is the error object the Graph API returns next to (or instead
// of) a result. Its presence marks the whole response as failed.
type GraphError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode"`
	IsTransient  bool   `json:"is_transient"`
	FbtraceID    string `json:"fbtrace_id"`
}

type FacebookPostResult struct {
	ID    string      `json:"id"`
	Error *GraphError `json:"error"`
}

type FacebookToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type FacebookUserInfo struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Error *GraphError `json:"error"`
}

type FacebookPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
	Picture     struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

type FacebookPagesResponse struct {
	Data  []FacebookPage `json:"data"`
	Error *GraphError    `json:"error"`
}

type PageCreation struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	About    string `json:"about"`
}
