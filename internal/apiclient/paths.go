package apiclient

import "net/url"

// Backend routes consumed by the stores.
const (
	PathLogin          = "/admin/login"
	PathSignup         = "/admin/signup"
	PathProfile        = "/admin/profile"
	PathListUsers      = "/admin/list-users"
	PathListCategories = "/admin/category/list-categories"
	PathCreateCategory = "/admin/category/create"
	PathListProducts   = "/admin/list-products"
	PathCreateProduct  = "/admin/create-product"
	PathUploadAssets   = "/admin/upload/assets"
)

func PathUser(id string) string           { return "/admin/user/" + url.PathEscape(id) }
func PathUserStatus(id string) string     { return "/admin/" + url.PathEscape(id) + "/status" }
func PathUserBlock(id string) string      { return "/admin/" + url.PathEscape(id) + "/block" }
func PathUpdateCategory(id string) string { return "/admin/category/update/" + url.PathEscape(id) }
func PathDeleteCategory(id string) string { return "/admin/category/delete/" + url.PathEscape(id) }
func PathUpdateProduct(id string) string  { return "/admin/product/" + url.PathEscape(id) }
func PathDeleteProduct(id string) string  { return "/admin/products/" + url.PathEscape(id) }
