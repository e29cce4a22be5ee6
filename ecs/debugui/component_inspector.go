package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tinyecs/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(world *ecs.World, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	entity := findEntity(world, ci.selectedEntityId)
	if entity == nil {
		imgui.Text(fmt.Sprintf("Entity %d is no longer in the world", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", entity.Id()))
	imgui.Text(fmt.Sprintf("Components: %d", entity.Len()))
	imgui.Separator()

	// Duplicate types are legal, so tree ids are suffixed with the position
	for i, c := range entity.Components() {
		if imgui.TreeNodeStr(fmt.Sprintf("%s##%d", c.Type, i)) {
			ci.renderComponent(c)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// asTable reports whether v is an editable table, either ecs.Fields or a plain
// map[string]any.
func asTable(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case ecs.Fields:
		return t, t != nil
	case map[string]any:
		return t, t != nil
	default:
		return nil, false
	}
}

func findEntity(world *ecs.World, id ecs.EntityId) *ecs.Entity {
	for _, e := range world.Entities() {
		if e.Id() == id {
			return e
		}
	}
	return nil
}

func (ci *ComponentInspectorComponent) renderComponent(c *ecs.Component) {
	if table, ok := asTable(c.Data); ok {
		ci.renderTable(table)
		return
	}

	switch data := c.Data.(type) {
	case nil:
		imgui.Text("<nil>")

	case string:
		if imgui.InputTextWithHint("##value", "", &data, imgui.InputTextFlagsNone, nil) {
			c.Data = data
		}

	case bool:
		if imgui.Checkbox("value", &data) {
			c.Data = data
		}

	case int:
		v := int32(data)
		if imgui.InputInt("##value", &v) {
			c.Data = int(v)
		}

	case float64:
		v := float32(data)
		if imgui.InputFloat("##value", &v) {
			c.Data = float64(v)
		}

	default:
		val := reflect.ValueOf(data)
		if val.Kind() == reflect.Pointer && !val.IsNil() && val.Elem().Kind() == reflect.Struct {
			ci.renderStruct(val.Elem())
			return
		}
		imgui.Text(fmt.Sprintf("%v", data))
	}
}

// renderTable edits table fields in place. Systems hold the same map, so
// changes are visible on the next emit.
func (ci *ComponentInspectorComponent) renderTable(table map[string]any) {
	for _, key := range sortedKeys(table) {
		label := fmt.Sprintf("##%s", key)

		if nested, ok := asTable(table[key]); ok {
			if imgui.TreeNodeStr(key) {
				ci.renderTable(nested)
				imgui.TreePop()
			}
			continue
		}

		switch v := table[key].(type) {
		case int:
			n := int32(v)
			imgui.Text(fmt.Sprintf("%s:", key))
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			if imgui.InputInt(label, &n) {
				table[key] = int(n)
			}

		case float64:
			f := float32(v)
			imgui.Text(fmt.Sprintf("%s:", key))
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			if imgui.InputFloat(label, &f) {
				table[key] = float64(f)
			}

		case bool:
			if imgui.Checkbox(key, &v) {
				table[key] = v
			}

		case string:
			imgui.Text(fmt.Sprintf("%s:", key))
			imgui.SameLine()
			imgui.SetNextItemWidth(200)
			if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
				table[key] = v
			}

		default:
			imgui.Text(fmt.Sprintf("%s: %v", key, v))
		}
	}
}

func (ci *ComponentInspectorComponent) renderStruct(val reflect.Value) {
	for _, field := range inspectorFields.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}

		ci.renderField(field, fieldVal)
	}
}

func (ci *ComponentInspectorComponent) renderField(field FieldInfo, val reflect.Value) {
	name := field.Name
	label := fmt.Sprintf("##%s", name)

	switch field.Kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
