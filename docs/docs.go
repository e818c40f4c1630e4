// Package docs 注册 Blog Service 的 Swagger 文档，内容与 controller 中的 swag 注解保持一致。
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "列出所有对外可见的帖子: 已发布、发布时间不晚于当前时间、所属分类已发布 (或没有分类)。按发布时间倒序，同一时间按标题升序。页码越界时回退到第一页或最后一页。",
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "首页帖子列表",
                "parameters": [
                    {"type": "string", "description": "页码 (从1开始，last 表示最后一页)", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "帖子列表的一页", "schema": {"$ref": "#/definitions/vo.PostPageResponseWrapper"}},
                    "500": {"description": "服务器内部错误", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            }
        },
        "/category/{slug}/": {
            "get": {
                "description": "列出某个分类下的可见帖子。分类不存在或未发布时返回 404。",
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "分类帖子列表",
                "parameters": [
                    {"type": "string", "description": "分类标识", "name": "slug", "in": "path", "required": true},
                    {"type": "string", "description": "页码 (从1开始，last 表示最后一页)", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "分类信息与帖子列表", "schema": {"$ref": "#/definitions/vo.CategoryPageResponseWrapper"}},
                    "404": {"description": "分类不存在或未发布", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            }
        },
        "/posts/create": {
            "post": {
                "description": "作者为当前用户。成功后重定向到作者主页。引用的分类或地点不存在时返回字段错误。",
                "consumes": ["multipart/form-data"],
                "tags": ["posts (帖子)"],
                "summary": "创建帖子",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "标题", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "正文", "name": "text", "in": "formData", "required": true},
                    {"type": "string", "description": "发布时间 (RFC3339 或 2006-01-02T15:04，UTC)", "name": "pub_date", "in": "formData", "required": true},
                    {"type": "integer", "description": "分类 ID", "name": "category_id", "in": "formData"},
                    {"type": "integer", "description": "地点 ID", "name": "location_id", "in": "formData"},
                    {"type": "file", "description": "帖子图片", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "重定向到作者主页"},
                    "400": {"description": "表单校验失败", "schema": {"$ref": "#/definitions/vo.FieldErrorsResponseWrapper"}}
                }
            }
        },
        "/posts/{id}/": {
            "get": {
                "description": "返回帖子及其评论 (按创建时间升序)。对非作者不可见的帖子返回 404，作者本人始终可以查看。",
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "帖子详情",
                "parameters": [
                    {"type": "string", "description": "查看者用户 ID (由网关注入)", "name": "X-User-ID", "in": "header"},
                    {"type": "integer", "description": "帖子 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "帖子详情", "schema": {"$ref": "#/definitions/vo.PostDetailResponseWrapper"}},
                    "404": {"description": "帖子不存在或不可见", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            }
        },
        "/posts/{id}/edit": {
            "get": {
                "description": "只有作者可以获取，非作者重定向到帖子详情页。",
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "帖子编辑表单",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "帖子 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "帖子当前内容", "schema": {"$ref": "#/definitions/vo.PostDetailResponseWrapper"}},
                    "302": {"description": "非作者重定向到帖子详情页"}
                }
            },
            "post": {
                "description": "只有作者可以编辑，非作者重定向到帖子详情页。成功后重定向到作者主页。",
                "consumes": ["multipart/form-data"],
                "tags": ["posts (帖子)"],
                "summary": "编辑帖子",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "帖子 ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "标题", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "正文", "name": "text", "in": "formData", "required": true},
                    {"type": "string", "description": "发布时间", "name": "pub_date", "in": "formData", "required": true},
                    {"type": "file", "description": "新的帖子图片", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "重定向到作者主页或帖子详情页"},
                    "400": {"description": "表单校验失败", "schema": {"$ref": "#/definitions/vo.FieldErrorsResponseWrapper"}}
                }
            }
        },
        "/posts/{id}/delete": {
            "post": {
                "description": "只有作者可以删除，非作者重定向到帖子详情页。评论随帖子一起删除。",
                "tags": ["posts (帖子)"],
                "summary": "删除帖子",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "帖子 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "重定向到作者主页或帖子详情页"},
                    "404": {"description": "帖子不存在", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            }
        },
        "/posts/{id}/comment": {
            "post": {
                "description": "帖子必须存在。成功后重定向到帖子详情页。",
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["comments (评论)"],
                "summary": "添加评论",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "帖子 ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "评论内容", "name": "text", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "重定向到帖子详情页"},
                    "400": {"description": "表单校验失败", "schema": {"$ref": "#/definitions/vo.FieldErrorsResponseWrapper"}},
                    "404": {"description": "帖子不存在", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            }
        },
        "/posts/{id}/comment/{cid}/edit": {
            "get": {
                "description": "评论必须属于该帖子，否则返回 404。非作者重定向到帖子详情页。",
                "produces": ["application/json"],
                "tags": ["comments (评论)"],
                "summary": "评论编辑表单",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "帖子 ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "评论 ID", "name": "cid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "评论当前内容", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}},
                    "302": {"description": "非作者重定向到帖子详情页"},
                    "404": {"description": "评论不存在", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            },
            "post": {
                "description": "只有评论作者可以编辑，非作者重定向到帖子详情页且评论内容不变。",
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["comments (评论)"],
                "summary": "编辑评论",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "帖子 ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "评论 ID", "name": "cid", "in": "path", "required": true},
                    {"type": "string", "description": "评论内容", "name": "text", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "重定向到帖子详情页"},
                    "400": {"description": "表单校验失败", "schema": {"$ref": "#/definitions/vo.FieldErrorsResponseWrapper"}},
                    "404": {"description": "评论不存在", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            }
        },
        "/posts/{id}/comment/{cid}/delete": {
            "post": {
                "description": "只有评论作者可以删除，非作者重定向到帖子详情页。",
                "tags": ["comments (评论)"],
                "summary": "删除评论",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "integer", "description": "帖子 ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "评论 ID", "name": "cid", "in": "path", "required": true}
                ],
                "responses": {
                    "302": {"description": "重定向到帖子详情页"},
                    "404": {"description": "评论不存在", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            }
        },
        "/profile/edit": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profile (个人主页)"],
                "summary": "本人资料",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "本人资料 (含邮箱)", "schema": {"$ref": "#/definitions/vo.ProfileResponseWrapper"}},
                    "302": {"description": "未登录重定向到登录页"}
                }
            },
            "post": {
                "description": "可修改 first_name、last_name、username、email。用户名必须唯一。",
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["profile (个人主页)"],
                "summary": "更新本人资料",
                "parameters": [
                    {"type": "string", "description": "用户 ID (由网关注入)", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "用户名", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "名", "name": "first_name", "in": "formData"},
                    {"type": "string", "description": "姓", "name": "last_name", "in": "formData"},
                    {"type": "string", "description": "邮箱", "name": "email", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "重定向到本人主页"},
                    "400": {"description": "表单校验失败", "schema": {"$ref": "#/definitions/vo.FieldErrorsResponseWrapper"}}
                }
            }
        },
        "/profile/{username}/": {
            "get": {
                "description": "用户资料与其帖子列表。本人查看时包含未发布与定时发布的帖子，其他人只能看到可见帖子。",
                "produces": ["application/json"],
                "tags": ["profile (个人主页)"],
                "summary": "用户主页",
                "parameters": [
                    {"type": "string", "description": "查看者用户 ID (由网关注入)", "name": "X-User-ID", "in": "header"},
                    {"type": "string", "description": "用户名", "name": "username", "in": "path", "required": true},
                    {"type": "string", "description": "页码 (从1开始，last 表示最后一页)", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "用户资料与帖子列表", "schema": {"$ref": "#/definitions/vo.ProfilePageResponseWrapper"}},
                    "404": {"description": "用户不存在", "schema": {"$ref": "#/definitions/vo.BaseResponseWrapper"}}
                }
            }
        }
    },
    "definitions": {
        "vo.AuthorVO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "vo.CategoryVO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "vo.LocationVO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "vo.PostResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "text": {"type": "string"},
                "pub_date": {"type": "string"},
                "image_url": {"type": "string"},
                "is_published": {"type": "boolean"},
                "view_count": {"type": "integer"},
                "comment_count": {"type": "integer"},
                "author": {"$ref": "#/definitions/vo.AuthorVO"},
                "category": {"$ref": "#/definitions/vo.CategoryVO"},
                "location": {"$ref": "#/definitions/vo.LocationVO"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "vo.PageVO": {
            "type": "object",
            "properties": {
                "number": {"type": "integer"},
                "num_pages": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "has_previous": {"type": "boolean"},
                "has_next": {"type": "boolean"},
                "previous_page": {"type": "integer"},
                "next_page": {"type": "integer"}
            }
        },
        "vo.PostPageVO": {
            "type": "object",
            "properties": {
                "posts": {"type": "array", "items": {"$ref": "#/definitions/vo.PostResponse"}},
                "page": {"$ref": "#/definitions/vo.PageVO"}
            }
        },
        "vo.CommentVO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "post_id": {"type": "integer"},
                "text": {"type": "string"},
                "author": {"$ref": "#/definitions/vo.AuthorVO"},
                "created_at": {"type": "string"},
                "can_edit": {"type": "boolean"}
            }
        },
        "vo.PostDetailVO": {
            "type": "object",
            "properties": {
                "post": {"$ref": "#/definitions/vo.PostResponse"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/vo.CommentVO"}},
                "can_edit": {"type": "boolean"}
            }
        },
        "vo.ProfileVO": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "date_joined": {"type": "string"}
            }
        },
        "vo.PostPageResponseWrapper": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 0},
                "message": {"type": "string", "example": "success"},
                "data": {"$ref": "#/definitions/vo.PostPageVO"}
            }
        },
        "vo.CategoryPageResponseWrapper": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 0},
                "message": {"type": "string", "example": "success"},
                "data": {
                    "type": "object",
                    "properties": {
                        "category": {"$ref": "#/definitions/vo.CategoryVO"},
                        "posts": {"type": "array", "items": {"$ref": "#/definitions/vo.PostResponse"}},
                        "page": {"$ref": "#/definitions/vo.PageVO"}
                    }
                }
            }
        },
        "vo.PostDetailResponseWrapper": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 0},
                "message": {"type": "string", "example": "success"},
                "data": {"$ref": "#/definitions/vo.PostDetailVO"}
            }
        },
        "vo.ProfilePageResponseWrapper": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 0},
                "message": {"type": "string", "example": "success"},
                "data": {
                    "type": "object",
                    "properties": {
                        "profile": {"$ref": "#/definitions/vo.ProfileVO"},
                        "is_owner": {"type": "boolean"},
                        "posts": {"type": "array", "items": {"$ref": "#/definitions/vo.PostResponse"}},
                        "page": {"$ref": "#/definitions/vo.PageVO"}
                    }
                }
            }
        },
        "vo.ProfileResponseWrapper": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 0},
                "message": {"type": "string", "example": "success"},
                "data": {"$ref": "#/definitions/vo.ProfileVO"}
            }
        },
        "vo.FieldErrorsResponseWrapper": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 40001},
                "message": {"type": "string", "example": "表单校验失败"},
                "data": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "vo.BaseResponseWrapper": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 0},
                "message": {"type": "string", "example": "success"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8083",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Blog Service API",
	Description:      "博客服务: 帖子、分类、评论与个人主页，按发布状态与发布时间控制可见性。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
