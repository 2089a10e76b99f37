package gemini

import (
	"fmt"
	"strings"

	"github.com/Veraticus/easy-style/internal/model"
)

const stylistInstruction = `You are an expert fashion stylist. Your goal is to analyze a user's photo and their request, then create a new, improved style for them. You must suggest specific, real-world clothing items.

Your tasks are:
1.  **Analyze**: Look at the user's photo and understand their request.
2.  **Describe the new style**: Write a short, appealing description of the new style you are proposing in Korean.
3.  **List items**: Identify the key clothing items for this new style (e.g., top, bottom, shoes, accessory). For each item, provide a detailed search keyword that can be used to find a real product on a Korean online shopping mall like Musinsa. The keyword should be in Korean and very specific (e.g., '남자 오버핏 옥스포드 셔츠 화이트', '여성 와이드핏 슬랙스 블랙'). The category must be one of '상의', '하의', '신발', '악세서리'.`

func followUpPrompt(prompt string) string {
	return fmt.Sprintf(`사용자의 스타일링 요청에 대해 더 구체적인 정보를 얻기 위한 질문을 하나 생성해줘. 사용자의 요청: "%s".
질문은 사용자가 자신의 취향을 더 잘 표현할 수 있도록 도와야 해.
예시 답변도 3개 제공해줘.
결과는 반드시 아래 JSON 형식과 일치해야 해.
{
  "question": "string",
  "examples": ["string", "string", "string"]
}`, prompt)
}

func planPrompt(prompt string) string {
	return fmt.Sprintf(`이 사진의 사람을 위해 "%s" 요청에 맞춰 새로운 스타일을 제안해줘.`, prompt)
}

func synthesisPrompt(description string, products []model.Product, bg model.BackgroundContext) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s: %s %s", p.Category, p.Brand, p.Name))
	}

	return fmt.Sprintf(`Original photo of the person is provided.
New style description: "%s"
Real products to use for the new style:
%s

Generate a new, photorealistic image of the person from the original photo. They should be wearing the new style composed of the exact products listed. The person's face and body should be preserved.

Background: %s
Setting: %s
Lighting: %s

Make sure the background complements the style and creates an appropriate atmosphere for the outfit. The image should look natural and professionally styled.`,
		description, strings.Join(lines, "\n"), bg.Description, bg.Setting, bg.Lighting)
}

func cropPrompt(category model.Category, productName string) string {
	return fmt.Sprintf(`이 전체 스타일링 이미지에서 "%[1]s" (%[2]s)을 정확히 찾아서 상품 이미지로 크롭해줘.

작업 단계:
1. 이미지에서 해당 %[2]s 제품을 정확히 식별
2. 제품이 잘 보이는 각도와 범위로 크롭
3. 제품의 형태와 디테일이 명확히 드러나도록 프레임 조정

%[3]s

중요 사항:
- 착용된 상태 그대로 자연스럽게 크롭 (제품만 분리하지 말고)
- 제품의 핏과 스타일링 효과가 잘 보이도록
- 배경은 자연스럽게 포함하되 제품에 집중
- 상품 쇼핑몰에서 볼 수 있는 품질의 이미지로 생성
- 제품이 불분명하거나 찾을 수 없다면 전체 스타일링의 해당 부분을 포함하여 크롭

결과: 전문적인 상품 이미지 (착용 상태)`, productName, category, cropInstruction(category, productName))
}

func cropInstruction(category model.Category, productName string) string {
	switch category {
	case model.CategoryTop:
		return fmt.Sprintf(`상의 (%s)에 집중해서:
- 셔츠/블라우스/니트 등의 전체 형태가 보이도록
- 어깨부터 허리 또는 엉덩이까지 포함
- 소매와 칼라 디테일이 명확히 보이도록
- 옷의 핏과 실루엣이 잘 드러나도록`, productName)
	case model.CategoryBottom:
		return fmt.Sprintf(`하의 (%s)에 집중해서:
- 바지/스커트/반바지의 전체 길이가 보이도록
- 허리부터 발목 또는 무릎까지 포함
- 핏과 실루엣이 명확히 드러나도록
- 주름이나 라인이 자연스럽게 보이도록`, productName)
	case model.CategoryShoes:
		return fmt.Sprintf(`신발 (%s)에 집중해서:
- 신발 전체가 명확히 보이도록
- 발과 발목 부분도 약간 포함
- 신발의 형태와 스타일이 잘 드러나도록
- 측면 또는 전면에서 가장 매력적인 각도로`, productName)
	case model.CategoryAccessory:
		return fmt.Sprintf(`악세서리 (%s)에 집중해서:
- 가방/모자/목걸이/귀걸이 등을 클로즈업
- 악세서리가 착용된 상태로 자연스럽게
- 디테일과 질감이 명확히 보이도록
- 주변 컨텍스트도 약간 포함하여 사용감 표현`, productName)
	default:
		return `해당 제품을 중심으로:
- 제품의 전체적인 모습이 보이도록
- 착용된 상태에서 자연스럽게
- 제품의 특징이 잘 드러나도록`
	}
}
