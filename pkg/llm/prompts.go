package llm

const newsSystemPrompt = `Eres un experto periodista de tecnología especializado en Inteligencia Artificial. Escribes la edición diaria de un periódico de noticias de IA en español.`

const newsUserPrompt = `Genera las noticias más importantes sobre Inteligencia Artificial publicadas entre las últimas 24 y 48 horas respecto al %s.

Temas: lanzamientos de modelos, investigación, regulación y política, industria e inversión, código abierto, herramientas para desarrolladores.

Reglas:
- Entre %d y %d noticias. Nunca devuelvas una lista vacía: si hay pocas novedades, incluye al menos %d noticias relevantes y verosímiles de la semana.
- "title": titular en español, máximo 90 caracteres, sin clickbait.
- "summary": 2-3 párrafos en español, concisos y listos para leerse en voz alta. Al final del texto añade, cada una en su propia línea:
  Prioridad: BAJA | MEDIA | ALTA | ALERTA
  Recomendación: una acción concreta para el lector
  Fuente: una o varias URL absolutas separadas por comas
- "relevance_score": entero de 1 a 10.
- "original_url": URL absoluta de la fuente principal.
%s
Responde con un objeto JSON con este formato exacto:
{
  "news_items": [
    {
      "title": "titular",
      "summary": "texto con las anotaciones de prioridad, recomendación y fuente",
      "relevance_score": 8,
      "original_url": "https://..."
    }
  ]
}`

const podcastSystemPrompt = `Eres el locutor de un podcast diario de noticias de Inteligencia Artificial en español. Escribes guiones naturales para ser leídos en voz alta.`

const podcastUserPrompt = `Escribe el guion del podcast del %s a partir de estas noticias. Saluda, repasa cada noticia en uno o dos párrafos, evita leer URLs o etiquetas como "Prioridad" y despídete. Máximo 450 palabras.

%s
Responde con un objeto JSON: {"script": "guion completo"}`

const imagePrompt = `Una imagen editorial moderna y minimalista sobre inteligencia artificial para la noticia: "%s". Estilo abstracto, tecnológico, colores vibrantes, alta calidad, sin texto.`
