package engine

// outfitPrompts 穿搭分析提示词，按语言区分。标题用 ** 包裹，section.Parse 依赖这一格式。
var outfitPrompts = map[string]string{
	"ru": `
Детально проанализируй наряд на фото. Ответ должен содержать:

1. Верхняя одежда: [тип, цвет, фасон]
2. Основной слой: [футболка/рубашка и т.д.]
3. Низ: [брюки/юбка/шорты]
4. Обувь: [тип, цвет]
5. Аксессуары: [сумки, украшения, головные уборы]
6. Общий стиль: [casual/formal/sporty/etc]
7. Цветовая палитра: основные цвета: [цвет1, цвет2, ...]
8. Рекомендации по улучшению:
   - [совет 1]
   - [совет 2]
   - [совет 3]

Каждый заголовок выдели как **Заголовок:**, советы начинай с "* ".
Будь максимально конкретным и детальным в описании.
`,
	"en": `
Analyze the outfit in the photo in detail. The answer must contain:

1. Outerwear: [type, color, cut]
2. Base layer: [t-shirt/shirt etc.]
3. Bottom: [trousers/skirt/shorts]
4. Footwear: [type, color]
5. Accessories: [bags, jewelry, headwear]
6. Overall style: [casual/formal/sporty/etc]
7. Color palette: main colors: [color1, color2, ...]
8. Improvement recommendations:
   - [tip 1]
   - [tip 2]
   - [tip 3]

Wrap every heading as **Heading:** and start every tip with "* ".
Be as specific and detailed as possible.
`,
}

// stylistPrompts 文字提问时的系统提示词
var stylistPrompts = map[string]string{
	"ru": `Ты персональный стилист. Отвечай по делу. Разбивай ответ на разделы с заголовками вида **Заголовок:**, ` +
		`советы оформляй в разделе **Рекомендации:** списком, где каждый пункт начинается с "* ". ` +
		`Если упоминаешь цвета, добавь раздел **Цветовая палитра:** основные цвета: цвет1, цвет2.`,
	"en": `You are a personal stylist. Answer to the point. Split the answer into sections with headings like **Heading:**, ` +
		`put advice under **Recommendations:** as a list where every item starts with "* ". ` +
		`If you mention colors, add a **Color palette:** main colors: color1, color2 section.`,
}

// pick 依次尝试请求语言、配置语言，最后回退到俄语
func pick(prompts map[string]string, language, fallback string) string {
	for _, l := range []string{language, fallback} {
		if p, ok := prompts[l]; ok {
			return p
		}
	}
	return prompts["ru"]
}
