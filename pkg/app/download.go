package app

import (
	"net/http"
	"strconv"
)

// XMLContentType is sent with every XML document.
const XMLContentType = "text/xml; charset=utf-8"

// ToXML writes body as an XML document. When attachment is true the browser
// is told to save it as filename; otherwise it is shown inline.
// ToXML 输出 XML 文档，attachment 为 true 时作为附件下载
func (r *Response) ToXML(body []byte, filename string, attachment bool) {
	h := r.Ctx.Writer.Header()
	h.Set("Content-Type", XMLContentType)
	if attachment {
		h.Set("Cache-Control", "private")
		h.Set("Content-Length", strconv.Itoa(len(body)))
		h.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	r.Ctx.Set("status_code", http.StatusOK)
	r.Ctx.Status(http.StatusOK)
	_, _ = r.Ctx.Writer.Write(body)
}
