package scenes

import (
	"log"
	"strings"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/simulation"
	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 面板布局
const (
	panelMaxWidth  = 560.0
	panelMargin    = 24.0
	panelPadding   = 18.0
	formFieldCount = 4
	formMaxRunes   = 48
)

// panelAction 面板处理一帧输入后的结果
type panelAction int

const (
	panelNone panelAction = iota
	panelClose
	panelSubmit
)

// panelInput 面板关心的一帧输入
type panelInput struct {
	Close     bool   // Esc 或点击面板外
	Confirm   bool   // Enter
	Interact  bool   // E（表单里 E 是普通字符）
	Tab       bool   // 切换表单字段
	Backspace bool   // 删除一个字符
	Chars     []rune // 本帧输入的字符
}

// readPanelInput 从 ebiten 读取面板输入
func readPanelInput(panelRect [4]float64) panelInput {
	in := panelInput{
		Close:     inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Confirm:   inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
		Interact:  inpututil.IsKeyJustPressed(ebiten.KeyE),
		Tab:       inpututil.IsKeyJustPressed(ebiten.KeyTab),
		Backspace: inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
		Chars:     ebiten.AppendInputChars(nil),
	}
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		fx, fy := float64(x), float64(y)
		inside := fx >= panelRect[0] && fx <= panelRect[0]+panelRect[2] &&
			fy >= panelRect[1] && fy <= panelRect[1]+panelRect[3]
		if !inside {
			in.Close = true
		}
	}
	return in
}

// registerForm 报名表的四个字段
type registerForm struct {
	fields [formFieldCount]string
	focus  int
}

var formLabels = [formFieldCount]string{"Name", "Email", "School", "Grade"}

func newRegisterForm(d game.FormDraft) *registerForm {
	return &registerForm{fields: [formFieldCount]string{d.Name, d.Email, d.School, d.Grade}}
}

// Type 向当前字段追加字符，控制字符被忽略
func (f *registerForm) Type(chars []rune) {
	for _, r := range chars {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if len([]rune(f.fields[f.focus])) >= formMaxRunes {
			return
		}
		f.fields[f.focus] += string(r)
	}
}

// Backspace 删除当前字段最后一个字符
func (f *registerForm) Backspace() {
	r := []rune(f.fields[f.focus])
	if len(r) > 0 {
		f.fields[f.focus] = string(r[:len(r)-1])
	}
}

// NextField 焦点移到下一个字段（循环）
func (f *registerForm) NextField() {
	f.focus = (f.focus + 1) % formFieldCount
}

// Valid 姓名非空且邮箱看起来像邮箱
func (f *registerForm) Valid() bool {
	name := strings.TrimSpace(f.fields[0])
	email := strings.TrimSpace(f.fields[1])
	at := strings.Index(email, "@")
	return name != "" && at > 0 && at < len(email)-1
}

// Draft 当前内容
func (f *registerForm) Draft() game.FormDraft {
	return game.FormDraft{
		Name:   strings.TrimSpace(f.fields[0]),
		Email:  strings.TrimSpace(f.fields[1]),
		School: strings.TrimSpace(f.fields[2]),
		Grade:  strings.TrimSpace(f.fields[3]),
	}
}

// Panel 信息面板，实现 simulation.Overlay
//
// 报名分类显示表单；其它分类只显示标题和正文。
type Panel struct {
	open     bool
	category string
	view     simulation.WaypointView
	form     *registerForm
	progress *game.ProgressStore
	message  string
}

// NewPanel 创建面板；progress 用于恢复和保存报名草稿，可为 nil
func NewPanel(progress *game.ProgressStore) *Panel {
	return &Panel{progress: progress}
}

// Open 打开面板
func (p *Panel) Open(category string, wp simulation.WaypointView) {
	p.open = true
	p.category = category
	p.view = wp
	p.message = ""
	p.form = nil
	if category == config.CategoryRegister {
		draft := game.FormDraft{}
		if p.progress != nil {
			draft = p.progress.Draft()
		}
		p.form = newRegisterForm(draft)
	}
}

// IsOpen 面板是否打开
func (p *Panel) IsOpen() bool {
	return p.open
}

// Category 当前面板分类
func (p *Panel) Category() string {
	return p.category
}

// Handle 处理一帧输入
// 普通面板：Esc/E/Enter/点击外部关闭；报名面板：Enter 在表单有效时提交，Esc/点击外部关闭
func (p *Panel) Handle(in panelInput) panelAction {
	if !p.open {
		return panelNone
	}
	if p.form == nil {
		if in.Close || in.Confirm || in.Interact {
			p.close()
			return panelClose
		}
		return panelNone
	}

	if in.Close {
		p.close()
		return panelClose
	}
	if in.Tab {
		p.form.NextField()
	}
	if in.Backspace {
		p.form.Backspace()
	}
	p.form.Type(in.Chars)
	if in.Confirm {
		if !p.form.Valid() {
			p.message = "Please enter your name and a valid email."
			return panelNone
		}
		p.open = false
		p.form = nil
		log.Printf("[Panel] 报名表已提交")
		return panelSubmit
	}
	return panelNone
}

// close 关闭面板，报名表未提交的内容存为草稿
func (p *Panel) close() {
	if err := p.saveDraft(); err != nil {
		log.Printf("[Panel] Warning: 保存草稿失败: %v", err)
	}
	p.open = false
	p.form = nil
}

// saveDraft 报名表打开时保存当前内容
func (p *Panel) saveDraft() error {
	if p.form == nil || p.progress == nil {
		return nil
	}
	return p.progress.SaveDraft(p.form.Draft())
}

// rect 面板在屏幕上的位置 (x, y, w, h)
func (p *Panel) rect(screenW, screenH float64) [4]float64 {
	w := screenW - panelMargin*2
	if w > panelMaxWidth {
		w = panelMaxWidth
	}
	h := screenH * 0.6
	return [4]float64{(screenW - w) / 2, (screenH - h) / 2, w, h}
}

// lines 面板正文（已按宽度换行）
func (p *Panel) lines(width float64) []string {
	var out []string
	for _, para := range p.view.Body {
		out = append(out, utils.WrapText(para, width, nil)...)
	}
	if p.form != nil {
		out = append(out, "")
		for i, label := range formLabels {
			cursor := " "
			if i == p.form.focus {
				cursor = ">"
			}
			out = append(out, cursor+" "+label+": "+p.form.fields[i])
		}
		out = append(out, "", "[Tab] next field  [Enter] submit  [Esc] close")
		if p.message != "" {
			out = append(out, p.message)
		}
	} else {
		out = append(out, "", "[E] close")
	}
	return out
}

// Draw 绘制面板
func (p *Panel) Draw(screen *ebiten.Image) {
	if !p.open {
		return
	}
	b := screen.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	vector.DrawFilledRect(screen, 0, 0, float32(sw), float32(sh), panelShade, false)

	r := p.rect(sw, sh)
	vector.DrawFilledRect(screen, float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]), panelBackground, false)
	vector.StrokeRect(screen, float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]), 2, panelBorder, false)

	x := int(r[0] + panelPadding)
	y := int(r[1] + panelPadding)
	ebitenutil.DebugPrintAt(screen, p.view.Title, x, y)
	y += int(utils.DebugLineHeight * 1.5)
	for _, line := range p.lines(r[2] - panelPadding*2) {
		if float64(y) > r[1]+r[3]-panelPadding {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += int(utils.DebugLineHeight)
	}
}
