// Package http provides Laravel-compatible response helpers.
//
//	res := gohttp.NewResponse(w)
//
//	res.Success(v)                         // 200 {"data": v}
//	res.Error(http.StatusConflict, "...")  // {"message": "..."}
//	res.NotFound()                         // 404 {"message": "Not found."}
//	res.ServerError()                      // 500 {"message": "Server Error."}
//	err := res.HTML(http.StatusOK, tmpl, data) // text/html, 500 on template error
package http
