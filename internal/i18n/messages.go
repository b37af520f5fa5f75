package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":                 "Invalid request.",
		"error.unauthorized":                "Please sign in.",
		"error.forbidden":                   "You do not have access to this resource.",
		"error.not_found":                   "Not found.",
		"error.internal":                    "Something went wrong. Please try again.",
		"error.query_failed":                "Could not load data.",
		"error.save_failed":                 "Could not save changes.",
		"error.delete_failed":               "Could not delete.",
		"error.rate_limited":                "Too many attempts. Try again in %d seconds.",
		"error.rate_limit_unavailable":      "Rate limiting is unavailable.",
		"error.tenant_not_found":            "Shop not found.",
		"error.tenant_inactive":             "This shop is not active. Please renew your access.",
		"error.tenant_required":             "Select a shop first.",
		"error.tenant_slug_taken":           "This address is already in use.",
		"error.product_not_found":           "Product not found.",
		"error.product_name_required":       "Product name is required.",
		"error.product_price_invalid":       "Invalid price.",
		"error.product_stock_invalid":       "Invalid stock.",
		"error.category_not_found":          "Category not found.",
		"error.category_name_required":      "Category name is required.",
		"error.subcategory_not_found":       "Subcategory not found.",
		"error.variation_invalid":           "Invalid variation.",
		"error.variation_selection_limit":   "Select at most %d option(s) in %s.",
		"error.cart_empty":                  "Your cart is empty.",
		"error.cart_tenant_mismatch":        "Your cart belongs to another shop.",
		"error.cart_item_not_found":         "Item not found in cart.",
		"error.cart_action_invalid":         "Invalid cart action.",
		"error.cart_unavailable":            "The cart is temporarily unavailable.",
		"error.order_not_found":             "Order not found.",
		"error.order_status_invalid":        "Invalid order status.",
		"error.invalid_credentials":         "Invalid email or password.",
		"error.login_locked":                "Too many failed attempts. Try again in %d seconds.",
		"error.email_taken":                 "This email is already registered.",
		"error.email_invalid":               "Invalid email.",
		"error.password_too_short":          "Password must have at least 6 characters.",
		"error.token_invalid":               "Your session has expired. Please sign in again.",
		"error.image_upload_failed":         "Could not upload the image.",
		"error.image_upload_not_configured": "Image upload is not configured.",
		"error.image_invalid":               "The file is not a valid image.",
		"error.file_too_large":              "The file is too large.",
		"error.captcha_required":            "Please complete the captcha.",
		"error.captcha_invalid":             "Invalid captcha.",
		"error.captcha_config_invalid":      "Captcha is misconfigured.",
		"order.default_customer":            "Customer",
		"catalog.default_title":             "Our Products",
		"catalog.default_message":           "Choose your favourite items and send your order on WhatsApp.",
		"catalog.default_cta":               "View collection",
	},
	LocalePT: {
		"error.bad_request":                 "Requisição inválida.",
		"error.unauthorized":                "Faça login para continuar.",
		"error.forbidden":                   "Você não tem acesso a este recurso.",
		"error.not_found":                   "Não encontrado.",
		"error.internal":                    "Algo deu errado. Tente novamente.",
		"error.query_failed":                "Não foi possível carregar os dados.",
		"error.save_failed":                 "Não foi possível salvar.",
		"error.delete_failed":               "Não foi possível excluir.",
		"error.rate_limited":                "Muitas tentativas. Tente novamente em %d segundos.",
		"error.rate_limit_unavailable":      "Limite de requisições indisponível.",
		"error.tenant_not_found":            "Loja não encontrada.",
		"error.tenant_inactive":             "Esta loja não está ativa. Renove seu acesso.",
		"error.tenant_required":             "Selecione uma loja primeiro.",
		"error.tenant_slug_taken":           "Este endereço já está em uso.",
		"error.product_not_found":           "Produto não encontrado.",
		"error.product_name_required":       "Informe o nome do produto.",
		"error.product_price_invalid":       "Preço inválido.",
		"error.product_stock_invalid":       "Estoque inválido.",
		"error.category_not_found":          "Categoria não encontrada.",
		"error.category_name_required":      "Informe o nome da categoria.",
		"error.subcategory_not_found":       "Subcategoria não encontrada.",
		"error.variation_invalid":           "Variação inválida.",
		"error.variation_selection_limit":   "Selecione no máximo %d opção(ões) em %s.",
		"error.cart_empty":                  "Seu carrinho está vazio.",
		"error.cart_tenant_mismatch":        "Seu carrinho pertence a outra loja.",
		"error.cart_item_not_found":         "Item não encontrado no carrinho.",
		"error.cart_action_invalid":         "Ação inválida.",
		"error.cart_unavailable":            "O carrinho está indisponível no momento.",
		"error.order_not_found":             "Pedido não encontrado.",
		"error.order_status_invalid":        "Status inválido.",
		"error.invalid_credentials":         "E-mail ou senha inválidos.",
		"error.login_locked":                "Muitas tentativas. Tente novamente em %d segundos.",
		"error.email_taken":                 "Este e-mail já está cadastrado.",
		"error.email_invalid":               "E-mail inválido.",
		"error.password_too_short":          "A senha deve ter pelo menos 6 caracteres.",
		"error.token_invalid":               "Sua sessão expirou. Faça login novamente.",
		"error.image_upload_failed":         "Não foi possível enviar a imagem.",
		"error.image_upload_not_configured": "O envio de imagens não está configurado.",
		"error.image_invalid":               "O arquivo não é uma imagem válida.",
		"error.file_too_large":              "O arquivo é muito grande.",
		"error.captcha_required":            "Preencha o captcha.",
		"error.captcha_invalid":             "Captcha inválido.",
		"error.captcha_config_invalid":      "Captcha mal configurado.",
		"order.default_customer":            "Cliente",
		"catalog.default_title":             "Nossos Produtos",
		"catalog.default_message":           "Escolha seus itens favoritos e envie seu pedido pelo WhatsApp.",
		"catalog.default_cta":               "Ver coleção",
	},
	LocaleZH: {
		"error.bad_request":                 "请求参数错误",
		"error.unauthorized":                "请先登录",
		"error.forbidden":                   "无权访问该资源",
		"error.not_found":                   "资源不存在",
		"error.internal":                    "服务异常，请稍后重试",
		"error.query_failed":                "查询失败",
		"error.save_failed":                 "保存失败",
		"error.delete_failed":               "删除失败",
		"error.rate_limited":                "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":      "限流服务不可用",
		"error.tenant_not_found":            "店铺不存在",
		"error.tenant_inactive":             "店铺未启用或已到期",
		"error.tenant_required":             "请先选择店铺",
		"error.tenant_slug_taken":           "该访问地址已被占用",
		"error.product_not_found":           "商品不存在",
		"error.product_name_required":       "商品名称不能为空",
		"error.product_price_invalid":       "价格无效",
		"error.product_stock_invalid":       "库存无效",
		"error.category_not_found":          "分类不存在",
		"error.category_name_required":      "分类名称不能为空",
		"error.subcategory_not_found":       "子分类不存在",
		"error.variation_invalid":           "变体无效",
		"error.variation_selection_limit":   "%[2]s 最多只能选择 %[1]d 项",
		"error.cart_empty":                  "购物车为空",
		"error.cart_tenant_mismatch":        "购物车属于其他店铺",
		"error.cart_item_not_found":         "购物车中不存在该商品",
		"error.cart_action_invalid":         "购物车操作无效",
		"error.cart_unavailable":            "购物车暂不可用",
		"error.order_not_found":             "订单不存在",
		"error.order_status_invalid":        "订单状态无效",
		"error.invalid_credentials":         "邮箱或密码错误",
		"error.login_locked":                "登录失败次数过多，请 %d 秒后重试",
		"error.email_taken":                 "邮箱已被注册",
		"error.email_invalid":               "邮箱格式错误",
		"error.password_too_short":          "密码至少 6 位",
		"error.token_invalid":               "登录已失效，请重新登录",
		"error.image_upload_failed":         "图片上传失败",
		"error.image_upload_not_configured": "未配置图片上传",
		"error.image_invalid":               "文件不是有效图片",
		"error.file_too_large":              "文件过大",
		"error.captcha_required":            "请完成验证码",
		"error.captcha_invalid":             "验证码错误",
		"error.captcha_config_invalid":      "验证码配置错误",
		"order.default_customer":            "顾客",
		"catalog.default_title":             "我们的商品",
		"catalog.default_message":           "挑选喜欢的商品，通过 WhatsApp 发送订单。",
		"catalog.default_cta":               "查看商品",
	},
}
