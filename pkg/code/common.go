package code

import "net/http"

var (
	Success = NewSuss(1, lang{en: "Success", zh_cn: "成功"})
	Failed  = NewError(0, http.StatusOK, lang{en: "Failed", zh_cn: "失败"})

	ErrorServerInternal   = NewError(500, http.StatusInternalServerError, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorNotFound         = NewError(404, http.StatusNotFound, lang{en: "Resource not found", zh_cn: "资源不存在"})
	ErrorInvalidParams    = NewError(400, http.StatusBadRequest, lang{en: "Invalid parameters", zh_cn: "参数错误"})
	ErrorTooManyRequests  = NewError(429, http.StatusTooManyRequests, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorRequestTimeout   = NewError(408, http.StatusRequestTimeout, lang{en: "Request timeout", zh_cn: "请求超时"})
	ErrorNotUserAuthToken = NewError(401, http.StatusUnauthorized, lang{en: "Authorization token missing", zh_cn: "缺少授权令牌"})
	ErrorInvalidAuthToken = NewError(402, http.StatusUnauthorized, lang{en: "Authorization token invalid", zh_cn: "授权令牌无效"})

	ErrorPermissionDenied    = NewError(403, http.StatusForbidden, lang{en: "Permission denied", zh_cn: "没有权限"})
	ErrorArticleNotFound     = NewError(1001, http.StatusNotFound, lang{en: "Article not found", zh_cn: "文章不存在"})
	ErrorArticleNotPublished = NewError(1002, http.StatusNotFound, lang{en: "Article is not published", zh_cn: "文章尚未发布"})
	ErrorArticleSlugExists   = NewError(1003, http.StatusOK, lang{en: "Article slug already exists", zh_cn: "文章别名已存在"})
	ErrorArticleSaveFailed   = NewError(1004, http.StatusOK, lang{en: "Failed to save article", zh_cn: "文章保存失败"})
	ErrorArticleExportFailed = NewError(1005, http.StatusInternalServerError, lang{en: "Failed to export article", zh_cn: "文章导出失败"})
	ErrorCommentSaveFailed   = NewError(1101, http.StatusOK, lang{en: "Failed to save comment", zh_cn: "评论保存失败"})

	ErrorUserRegisterIsDisable     = NewError(1201, http.StatusOK, lang{en: "User registration is disabled", zh_cn: "用户注册已关闭"})
	ErrorUserAlreadyExists         = NewError(1202, http.StatusOK, lang{en: "User already exists", zh_cn: "用户已存在"})
	ErrorUserNotFound              = NewError(1203, http.StatusOK, lang{en: "User not found", zh_cn: "用户不存在"})
	ErrorUserLoginPasswordFailed   = NewError(1204, http.StatusOK, lang{en: "Incorrect username or password", zh_cn: "用户名或密码错误"})
	ErrorPasswordNotValid          = NewError(1205, http.StatusOK, lang{en: "Passwords do not match", zh_cn: "两次密码不一致"})
	ErrorTokenGenerate             = NewError(1206, http.StatusOK, lang{en: "Failed to generate token", zh_cn: "令牌生成失败"})
	ErrorArchiveStorageUnavailable = NewError(1301, http.StatusOK, lang{en: "Archive storage unavailable", zh_cn: "归档存储不可用"})
)
